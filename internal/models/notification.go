package models

import (
	"encoding/json"
	"time"
)

type NotificationEvent string

const (
	NotificationEventSubmissionSucceeded NotificationEvent = "submission_succeeded"
	NotificationEventSubmissionFailed    NotificationEvent = "submission_failed"
)

type NotificationSeverity string

const (
	NotificationSeverityInfo  NotificationSeverity = "info"
	NotificationSeverityError NotificationSeverity = "error"
)

type Notification struct {
	ID        string               `json:"id" db:"id"`
	UserID    string               `json:"user_id" db:"user_id"`
	EventType NotificationEvent    `json:"event_type" db:"event_type"`
	Severity  NotificationSeverity `json:"severity" db:"severity"`
	Title     string               `json:"title" db:"title"`
	Message   string               `json:"message" db:"message"`
	Metadata  json.RawMessage      `json:"metadata,omitempty" db:"metadata"`
	CreatedAt time.Time            `json:"created_at" db:"created_at"`
	ReadAt    *time.Time           `json:"read_at" db:"read_at"`
}
