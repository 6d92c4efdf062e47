package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// progressStyle colors by completion: red below 33%, yellow below 66%,
// green otherwise.
func progressStyle(pct int) func(...string) string {
	switch {
	case pct < 33:
		return StyleRed.Render
	case pct < 66:
		return StyleYellow.Render
	default:
		return StyleGreen.Render
	}
}

func bar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 2 {
		width = 2
	}
	filled := pct * width / 100
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

// RenderProgress renders a progress percentage as [████░░░░]  45%.
func RenderProgress(pct, width int) string {
	return fmt.Sprintf("[%s] %3d%%", progressStyle(pct)(bar(pct, width)), clampPct(pct))
}

// RenderCompactBar renders only the blocks, dimmed when dim is set.
func RenderCompactBar(pct, width int, dim bool) string {
	if dim {
		return StyleDim.Render(bar(pct, width))
	}
	return progressStyle(pct)(bar(pct, width))
}

func clampPct(pct int) int {
	return max(0, min(100, pct))
}
