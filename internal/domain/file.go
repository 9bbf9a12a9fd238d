package domain

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantFile is a document attached to a participant's record.
// The bytes live in object storage under FileKey.
type ParticipantFile struct {
	ID            uuid.UUID  `json:"id"`
	ParticipantID uuid.UUID  `json:"participant_id"`
	FileKey       string     `json:"file_key"`
	FileName      string     `json:"file_name"`
	FileSize      int64      `json:"file_size"`
	MimeType      string     `json:"mime_type"`
	Description   *string    `json:"description,omitempty"`
	UploadedBy    *uuid.UUID `json:"uploaded_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
