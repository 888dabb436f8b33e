package request

import "strings"

type Status string

const (
	StatusPending    Status = "Pending"
	StatusAccepted   Status = "Accepted"
	StatusInProgress Status = "In-progress"
	StatusCompleted  Status = "Completed"
)

// next holds the only forward edge out of each non-terminal status.
var next = map[Status]Status{
	StatusPending:    StatusAccepted,
	StatusAccepted:   StatusInProgress,
	StatusInProgress: StatusCompleted,
}

// ParseStatus accepts wire names case-insensitively and the legacy "open"
// alias for Pending.
func ParseStatus(value string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pending", "open":
		return StatusPending, true
	case "accepted":
		return StatusAccepted, true
	case "in-progress", "inprogress", "in_progress":
		return StatusInProgress, true
	case "completed":
		return StatusCompleted, true
	default:
		return "", false
	}
}

func (s Status) Next() (Status, bool) {
	n, ok := next[s]
	return n, ok
}

func (s Status) Terminal() bool {
	return s == StatusCompleted
}

// CanTransition allows exactly one step forward.
func CanTransition(from, to Status) bool {
	n, ok := from.Next()
	return ok && n == to
}
