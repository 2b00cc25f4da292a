package models

import "time"

const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
	JobStatusCancelled  = "cancelled"
)

// SubmissionJob tracks one attempt to materialize a campaign on the platform.
// Retrying reuses the row but assigns a fresh JobID.
type SubmissionJob struct {
	ID              string            `json:"id" db:"id"`
	UserID          string            `json:"user_id" db:"user_id"`
	CampaignID      string            `json:"campaign_id" db:"campaign_id"`
	JobID           string            `json:"job_id" db:"job_id"`
	Status          string            `json:"status" db:"status"`
	Progress        int               `json:"progress" db:"progress"`
	ProgressMessage *string           `json:"progress_message" db:"progress_message"`
	ErrorKind       *string           `json:"error_kind" db:"error_kind"`
	ErrorMessage    *string           `json:"error_message" db:"error_message"`
	Result          map[string]string `json:"result" db:"result"`
	StartedAt       *time.Time        `json:"started_at" db:"started_at"`
	CompletedAt     *time.Time        `json:"completed_at" db:"completed_at"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
}

// JobStats is a point-in-time count of submission jobs by status.
type JobStats struct {
	Pending    int `json:"pending" db:"pending"`
	Processing int `json:"processing" db:"processing"`
	Completed  int `json:"completed" db:"completed"`
	Failed     int `json:"failed" db:"failed"`
}
