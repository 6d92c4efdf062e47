package domain

import "cmp"

// Session identifies the user on whose behalf an operation runs.
// It is passed explicitly to operations that record authorship.
type Session struct {
	UserID      string
	DisplayName string
}

// Actor returns the name recorded as author, preferring the display name.
func (s Session) Actor() string {
	return cmp.Or(s.DisplayName, s.UserID, "unknown")
}
