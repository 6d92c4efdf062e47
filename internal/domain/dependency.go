package domain

import "time"

// Dependency is a typed, lagged precedence constraint between two items.
type Dependency struct {
	ID            string
	EAPID         string
	PredecessorID string
	SuccessorID   string
	Type          DependencyType
	LagDays       int
	CreatedAt     time.Time
}
