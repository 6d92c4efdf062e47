package domain

// StatusForProgress is the single state transition applied whenever an
// item's progress changes. 100% is always completed. blocked is kept at any
// lower progress, since work can be blocked before it starts. Otherwise 0% is
// not_started, and in between the requested status is kept when it is one of
// in_progress, paused or cancelled, falling back to in_progress.
func StatusForProgress(progress int, requested ItemStatus) ItemStatus {
	switch {
	case progress >= 100:
		return StatusCompleted
	case requested == StatusBlocked:
		return StatusBlocked
	case progress <= 0:
		return StatusNotStarted
	}
	switch requested {
	case StatusInProgress, StatusPaused, StatusCancelled:
		return requested
	default:
		return StatusInProgress
	}
}

// ClampProgress bounds p to [0,100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
