// Package badge renders the reminder-count badge and decides when to
// surface the one-shot "you have reminders here" notice for a visit.
package badge

import (
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorRed   = "#e61f44"
	colorWhite = "#ffffff"
)

var badgeStyle = lipgloss.NewStyle().Bold(true).
	Foreground(lipgloss.Color(colorWhite)).
	Background(lipgloss.Color(colorRed)).
	Padding(0, 1)

// Render returns the styled count badge, or "" when there is nothing to
// show. Counts above 99 render as 99+ like a toolbar badge would.
func Render(count int) string {
	if count <= 0 {
		return ""
	}
	label := strconv.Itoa(count)
	if count > 99 {
		label = "99+"
	}
	return badgeStyle.Render(label)
}

// Notifier remembers which origins have already been announced during
// its lifetime, so each visit notifies at most once. State is held per
// Notifier, not in package globals, and resets on navigation.
type Notifier struct {
	mu   sync.Mutex
	seen map[string]bool
}

func NewNotifier() *Notifier {
	return &Notifier{seen: map[string]bool{}}
}

// ShouldNotify reports whether to announce the origin's reminders now.
// It returns true at most once per origin until Reset, and never for a
// zero count or an empty origin.
func (n *Notifier) ShouldNotify(origin string, count int) bool {
	if origin == "" || count <= 0 {
		return false
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.seen[origin] {
		return false
	}
	n.seen[origin] = true
	return true
}

// Reset forgets the origin, so the next visit may notify again.
func (n *Notifier) Reset(origin string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.seen, origin)
}
