package sheet

import "time"

// Wire keys of the sheet rows. The reader accepts any casing; the
// writer always emits these exact keys.
const (
	keyTimestamp = "Timestamp"
	keyGrievance = "Grievance"
	keyStatus    = "Status"
)

// Record is one row of the remote sheet. Timestamp is assigned by the
// client at submission time and never changes; Status is written only
// by someone editing the sheet directly, the client always submits it
// empty. Rows carry no identifier — identity is positional, in the
// order the sheet returns them.
type Record struct {
	Timestamp string `json:"Timestamp"`
	Grievance string `json:"Grievance"`
	Status    string `json:"Status"`
}

const timestampLayout = "2006-01-02T15:04:05"

// NewTimestamp returns the submission timestamp: ISO-8601 at seconds
// precision, local time, no offset.
func NewTimestamp() string {
	return time.Now().Format(timestampLayout)
}

// ParseTimestamp parses a timestamp written by NewTimestamp. Rows
// edited by hand may carry anything, so callers must tolerate failure.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(timestampLayout, s, time.Local)
}
