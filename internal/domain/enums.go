package domain

type ItemType string

const (
	ItemPhase       ItemType = "phase"
	ItemDeliverable ItemType = "deliverable"
	ItemActivity    ItemType = "activity"
	ItemTask        ItemType = "task"
)

// ValidItemTypes is the canonical set of accepted item type strings.
var ValidItemTypes = map[string]bool{
	"phase": true, "deliverable": true, "activity": true, "task": true,
}

// ChildType returns the conventional type one level finer than t.
// The hierarchy is advisory; tasks map to tasks.
func (t ItemType) ChildType() ItemType {
	switch t {
	case ItemPhase:
		return ItemDeliverable
	case ItemDeliverable:
		return ItemActivity
	default:
		return ItemTask
	}
}

// ItemTypeOrDefault reads an optional type field; empty means task.
func ItemTypeOrDefault(s string) ItemType {
	if s == "" {
		return ItemTask
	}
	return ItemType(s)
}

type ItemStatus string

const (
	StatusNotStarted ItemStatus = "not_started"
	StatusInProgress ItemStatus = "in_progress"
	StatusCompleted  ItemStatus = "completed"
	StatusPaused     ItemStatus = "paused"
	StatusCancelled  ItemStatus = "cancelled"
	StatusBlocked    ItemStatus = "blocked"
)

// ValidItemStatuses is the canonical set of accepted status strings.
var ValidItemStatuses = map[string]bool{
	"not_started": true, "in_progress": true, "completed": true,
	"paused": true, "cancelled": true, "blocked": true,
}

// ItemStatusOrDefault reads an optional status field; empty means
// not_started.
func ItemStatusOrDefault(s string) ItemStatus {
	if s == "" {
		return StatusNotStarted
	}
	return ItemStatus(s)
}

// DependencyType is the temporal constraint linking a predecessor boundary
// to a successor boundary.
type DependencyType string

const (
	FinishToStart  DependencyType = "FS"
	StartToStart   DependencyType = "SS"
	FinishToFinish DependencyType = "FF"
	StartToFinish  DependencyType = "SF"
)

// ValidDependencyTypes is the canonical set of accepted dependency type strings.
var ValidDependencyTypes = map[string]bool{
	"FS": true, "SS": true, "FF": true, "SF": true,
}

// Label returns the long form of the dependency type, e.g. "finish-to-start".
func (t DependencyType) Label() string {
	switch t {
	case FinishToStart:
		return "finish-to-start"
	case StartToStart:
		return "start-to-start"
	case FinishToFinish:
		return "finish-to-finish"
	case StartToFinish:
		return "start-to-finish"
	default:
		return string(t)
	}
}

// DependencyTypeOrDefault reads an optional dependency type; empty means FS.
func DependencyTypeOrDefault(s string) DependencyType {
	if s == "" {
		return FinishToStart
	}
	return DependencyType(s)
}
