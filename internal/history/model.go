package history

import (
	"strings"

	"grievlog/internal/sheet"
)

// Classification is the display class of a row. It only ever drives
// styling — every record is shown regardless of status.
type Classification int

const (
	Unseen Classification = iota
	Seen
)

// Classify is a pure function of the status text. A row is Seen when an
// external editor marked it: non-empty status containing "seen" in any
// casing, or the ✅ rune. An empty status is always Unseen.
func Classify(status string) Classification {
	s := strings.TrimSpace(status)
	if s == "" {
		return Unseen
	}
	if strings.Contains(strings.ToLower(s), "seen") || strings.Contains(s, "✅") {
		return Seen
	}
	return Unseen
}

// Model is the ordered view of the fetched rows. It is replaced
// wholesale on every successful refresh and never re-sorted, so it
// always mirrors exactly what the remote sheet last reported.
type Model struct {
	rows []sheet.Record
}

// Replace swaps the entire displayed set. The input is copied so later
// mutation by the caller cannot alias into the view.
func (m *Model) Replace(rows []sheet.Record) {
	next := make([]sheet.Record, len(rows))
	copy(next, rows)
	m.rows = next
}

// Rows returns the current view in sheet order.
func (m *Model) Rows() []sheet.Record { return m.rows }

func (m *Model) Len() int { return len(m.rows) }
