package model

import (
	"fmt"
	"time"
)

// JobStatus is the application status a user has recorded for a job.
//
// Any status may follow any other; a mistaken transition is corrected by
// recording another one.
type JobStatus string

const (
	StatusNotApplied JobStatus = "Not Applied"
	StatusApplied    JobStatus = "Applied"
	StatusRejected   JobStatus = "Rejected"
	StatusSelected   JobStatus = "Selected"
)

// Statuses lists every JobStatus in display order.
var Statuses = []JobStatus{StatusNotApplied, StatusApplied, StatusRejected, StatusSelected}

// ParseStatus converts a raw string to a JobStatus, returning an error for
// unknown values.
func ParseStatus(s string) (JobStatus, error) {
	st := JobStatus(s)
	switch st {
	case StatusNotApplied, StatusApplied, StatusRejected, StatusSelected:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// StatusUpdate is one entry of the transition history. Title and Company are
// copied at transition time and never re-read from the catalog.
type StatusUpdate struct {
	JobID   string    `json:"jobId"`
	Title   string    `json:"title"`
	Company string    `json:"company"`
	Status  JobStatus `json:"status"`
	Date    time.Time `json:"date"`
}
