package model

import "time"

// Entry is the completion state of one habit on one day. Field names are
// part of the persisted schema and must not change.
type Entry struct {
	Status      Status `json:"status"`
	Reason      string `json:"reason"`
	UpdatedAt   int64  `json:"updatedAt"`
	CompletedAt *int64 `json:"completedAt"`
}

// MergeEntry applies a status write on top of a prior entry (nil when the
// habit was unset for that day). The rules:
//
//   - status "done" forces reason empty and stamps completedAt with the
//     write time.
//   - status "failed" takes the supplied reason when non-nil; a nil reason
//     keeps the prior one. completedAt keeps its last-set value, it is not
//     cleared by a flip away from "done".
//   - updatedAt is always the write time.
func MergeEntry(prev *Entry, status Status, reason *string, now time.Time) Entry {
	millis := now.UnixMilli()
	out := Entry{
		Status:    status,
		UpdatedAt: millis,
	}
	if prev != nil {
		out.CompletedAt = prev.CompletedAt
	}
	switch status {
	case StatusDone:
		out.Reason = ""
		out.CompletedAt = &millis
	case StatusFailed:
		if reason != nil {
			out.Reason = *reason
		} else if prev != nil {
			out.Reason = prev.Reason
		}
	}
	return out
}
