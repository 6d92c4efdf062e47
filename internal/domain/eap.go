package domain

import (
	"fmt"
	"regexp"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

// EAP is one project's work breakdown structure instance.
type EAP struct {
	ID          string
	ShortID     string
	Name        string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 3-6 uppercase letters followed by 2-4 digits (e.g. OBRA01).
func (e *EAP) ValidateShortID() error {
	if e.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(e.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. OBRA01)", e.ShortID)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (e *EAP) DisplayID() string {
	if e.ShortID != "" {
		return e.ShortID
	}
	if len(e.ID) >= 8 {
		return e.ID[:8]
	}
	return e.ID
}
