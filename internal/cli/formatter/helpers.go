package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Money formats an amount with two decimals and thousands separators,
// e.g. 1234567.5 => "1,234,567.50".
func Money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}

// Date formats an optional date as YYYY-MM-DD, or a dim "--" when unset.
func Date(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format(domain.DateLayout)
}

// TypeBadge returns a short purple label for an item type.
func TypeBadge(t domain.ItemType) string {
	if t == "" {
		return StyleDim.Render("--")
	}
	label := strings.ToUpper(string(t)[:1]) + string(t)[1:]
	return StylePurple.Render(label)
}

// CriticalMark flags externally marked critical items.
func CriticalMark(critical bool) string {
	if !critical {
		return ""
	}
	return StyleRed.Render("▲")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Lag renders a signed day offset such as "+2d" or "-1d"; zero is empty.
func Lag(days int) string {
	if days == 0 {
		return ""
	}
	return fmt.Sprintf("%+dd", days)
}

// RelativeDateFrom returns a short relative form of t as seen from now,
// e.g. "Today", "In 3d", "2w ago".
func RelativeDateFrom(t, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DueDate renders an end date with its distance from now. Past dates of
// unfinished items are red.
func DueDate(end *time.Time, now time.Time, progress int) string {
	if end == nil {
		return Dim("--")
	}
	rel := RelativeDateFrom(*end, now)
	text := end.Format(domain.DateLayout) + " (" + rel + ")"
	if progress < 100 && end.Before(now) {
		return StyleRed.Render(text)
	}
	return text
}
