// Package reminder holds the reminder record type and the repository
// that manages per-origin reminder lists on top of the store.
package reminder

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Reminder is one note attached to an origin. The ID is assigned at
// creation and never changes; edits replace the text and re-stamp the
// date in place.
type Reminder struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Date string `json:"date"`
}

const (
	// MinLength is the shortest allowed reminder text after trimming.
	MinLength = 3
	// DefaultMaxLength is the longest, unless overridden in config.
	DefaultMaxLength = 250
)

// stampLayout renders dates like Jan/5/25: month abbreviation, day
// without padding, two-digit year.
const stampLayout = "Jan/2/06"

// Stamp formats t as a reminder date stamp.
func Stamp(t time.Time) string {
	return t.Format(stampLayout)
}

// SplitStamp separates a date stamp into its month and day/year parts
// for display. ok is false for anything that is not three segments.
func SplitStamp(stamp string) (month, dayYear string, ok bool) {
	parts := strings.Split(stamp, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[0], parts[1] + "/" + parts[2], true
}

func newID() string {
	return ulid.Make().String()
}
