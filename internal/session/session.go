// Package session tracks edit mode for the reminder list: at most one
// reminder may be under edit at a time, and while one is, every other
// reminder and the add form are frozen.
package session

// Session is the edit-mode state machine. The zero value is idle.
// It is process-local UI state and is never persisted.
type Session struct {
	active bool
	target string
}

// Active reports whether a reminder is currently under edit.
func (s *Session) Active() bool { return s.active }

// Target returns the ID of the reminder under edit, or "" when idle.
func (s *Session) Target() string {
	if !s.active {
		return ""
	}
	return s.target
}

// Begin enters edit mode for the given reminder. It returns false and
// changes nothing if another edit is already in progress, including a
// repeat Begin for the same ID.
func (s *Session) Begin(id string) bool {
	if s.active || id == "" {
		return false
	}
	s.active = true
	s.target = id
	return true
}

// Finish leaves edit mode after a successful save.
func (s *Session) Finish() {
	s.active = false
	s.target = ""
}

// Cancel leaves edit mode without saving. Deleting any reminder goes
// through Cancel first so no stale target survives the delete.
func (s *Session) Cancel() {
	s.active = false
	s.target = ""
}

// Interactive reports whether the reminder with the given ID may be
// acted on. Every reminder is interactive while idle; under edit, only
// the target is.
func (s *Session) Interactive(id string) bool {
	if !s.active {
		return true
	}
	return id == s.target
}

// FormEnabled reports whether the add form accepts input.
func (s *Session) FormEnabled() bool { return !s.active }
