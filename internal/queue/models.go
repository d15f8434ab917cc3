// Package queue persists the pipeline job ledger in SQLite so job history
// and failures survive process restarts.
package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a pipeline job.
type Status string

const (
	StatusPending      Status = "pending"
	StatusProbing      Status = "probing"
	StatusTranscoding  Status = "transcoding"
	StatusTranscribing Status = "transcribing"
	StatusFinalizing   Status = "finalizing"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusProbing,
	StatusTranscoding,
	StatusTranscribing,
	StatusFinalizing,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// ParseStatus validates a user-supplied status filter.
func ParseStatus(value string) (Status, bool) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	_, ok := statusSet[status]
	return status, ok
}

// Terminal reports whether the status is a resting state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job is one ledger row.
type Job struct {
	ID           int64
	ProjectID    string
	SourcePath   string
	Resolution   string
	Codec        string
	Status       Status
	ErrorMessage string
	OutputPath   string
	SubtitlePath string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
