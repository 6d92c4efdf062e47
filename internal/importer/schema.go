package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// ImportSchema is the top-level JSON structure of an EAP snapshot.
type ImportSchema struct {
	EAP          EAPImport          `json:"eap"`
	Items        []ItemImport       `json:"items"`
	Dependencies []DependencyImport `json:"dependencies,omitempty"`
}

// EAPImport defines the EAP-level fields in the import file.
type EAPImport struct {
	ShortID     string `json:"short_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ItemImport defines one WBS item. Parents must appear before their
// children. Codes are not part of the file; they are assigned on import.
type ItemImport struct {
	Ref         string           `json:"ref"`
	ParentRef   *string          `json:"parent_ref,omitempty"`
	Type        string           `json:"type"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Responsible string           `json:"responsible,omitempty"`
	StartDate   *string          `json:"start_date,omitempty"`
	EndDate     *string          `json:"end_date,omitempty"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
	Progress    *int             `json:"progress,omitempty"`
	Status      string           `json:"status,omitempty"`
	Critical    *bool            `json:"critical,omitempty"`
}

// DependencyImport defines a dependency between two items.
type DependencyImport struct {
	PredecessorRef string `json:"predecessor_ref"`
	SuccessorRef   string `json:"successor_ref"`
	Type           string `json:"type,omitempty"`
	LagDays        int    `json:"lag_days,omitempty"`
}

// LoadImportSchema reads and parses an EAP snapshot JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
