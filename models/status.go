package models

import (
	"fmt"
	"strings"
)

// Status is the moderation state shared by posts and comments.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Public reports whether content in this state is visible to readers.
func (s Status) Public() bool {
	switch s {
	case StatusApproved:
		return true
	case StatusPending, StatusRejected:
		return false
	default:
		return false
	}
}

// ModerationOrder sorts the moderation queue first: PENDING, then APPROVED,
// then REJECTED. column is the (possibly qualified) status column.
func ModerationOrder(column string) string {
	return fmt.Sprintf("CASE %s WHEN 'PENDING' THEN 0 WHEN 'APPROVED' THEN 1 ELSE 2 END", column)
}
