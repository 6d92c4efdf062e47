package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// addEAPFlag registers the required --eap selector shared by commands that
// work inside one EAP.
func addEAPFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVar(target, "eap", "", "EAP short ID or ID (e.g. OBRA01)")
}

// statusList is a repeatable, comma-separated --status flag.
type statusList []domain.ItemStatus

var _ pflag.Value = (*statusList)(nil)

func (s *statusList) String() string {
	parts := make([]string, len(*s))
	for i, st := range *s {
		parts[i] = string(st)
	}
	return strings.Join(parts, ",")
}

func (s *statusList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !domain.ValidItemStatuses[part] {
			return fmt.Errorf("unknown status %q", part)
		}
		*s = append(*s, domain.ItemStatus(part))
	}
	return nil
}

func (s *statusList) Type() string { return "statuses" }

// itemFlags holds the editable item fields shared by "item add" and
// "item update".
type itemFlags struct {
	name, description, responsible string
	itemType, status               string
	start, end, budget             string
	progress                       int
	critical                       bool
}

func (f *itemFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Item name")
	fs.StringVar(&f.description, "description", "", "Description")
	fs.StringVar(&f.responsible, "responsible", "", "Responsible person")
	fs.StringVar(&f.itemType, "type", "", "Item type (phase|deliverable|activity|task)")
	fs.StringVar(&f.status, "status", "", "Status (not_started|in_progress|completed|paused|cancelled|blocked)")
	fs.StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD)")
	fs.StringVar(&f.end, "end", "", "End date (YYYY-MM-DD)")
	fs.StringVar(&f.budget, "budget", "", "Budget, e.g. 1500.00")
	fs.IntVar(&f.progress, "progress", 0, "Progress percentage (0-100)")
	fs.BoolVar(&f.critical, "critical", false, "Mark as critical")
}

func parseDate(flag, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q: %w", flag, s, err)
	}
	return &d, nil
}

func parseBudget(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid budget %q: %w", s, err)
	}
	return d, nil
}

func parseLag(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
	if err != nil {
		return 0, fmt.Errorf("invalid lag %q: use whole days such as 2 or -1", s)
	}
	return n, nil
}
