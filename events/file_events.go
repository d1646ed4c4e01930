package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// FileUploadedEvent is emitted after a file record has been committed.
type FileUploadedEvent struct {
	ID         int64     `json:"id"`
	PublicLink string    `json:"public_link"`
	FileSize   int64     `json:"file_size"`
	MimeType   string    `json:"mime_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// FileUploadedV1 is the typed event definition for file uploads.
// Subject: events.filemeta.v1.file-uploaded
var FileUploadedV1 = helper.EventDefinition[FileUploadedEvent](
	"filemeta", "FileUploaded", "v1",
)
