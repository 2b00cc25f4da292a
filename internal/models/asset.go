package models

import (
	"encoding/json"
	"time"
)

type AssetFolder struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	ParentID  *string   `json:"parent_id" db:"parent_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Asset struct {
	ID          string          `json:"id" db:"id"`
	UserID      string          `json:"user_id" db:"user_id"`
	FolderID    *string         `json:"folder_id" db:"folder_id"`
	Name        string          `json:"name" db:"name"`
	Type        string          `json:"type" db:"type"` // enum: image, video, text
	FileName    *string         `json:"file_name" db:"file_name"`
	MimeType    *string         `json:"mime_type" db:"mime_type"`
	TextContent *string         `json:"text_content" db:"text_content"`
	Metadata    json.RawMessage `json:"metadata" db:"metadata"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}
