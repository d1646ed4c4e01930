package file

import (
	"time"
)

// Metadata is the caller-supplied part of a file record: everything except
// the server-assigned ID and upload time.
type Metadata struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FilePath     string `json:"file_path"`
	FileSize     int64  `json:"file_size"`
	MimeType     string `json:"mime_type"`
	PublicLink   string `json:"public_link"`
}

// Record is a stored file record. Records are created once and never
// updated or deleted.
type Record struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	FilePath     string    `json:"file_path"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	PublicLink   string    `json:"public_link"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// Metadata returns the caller-supplied fields of the record.
func (r *Record) Metadata() Metadata {
	return Metadata{
		Filename:     r.Filename,
		OriginalName: r.OriginalName,
		FilePath:     r.FilePath,
		FileSize:     r.FileSize,
		MimeType:     r.MimeType,
		PublicLink:   r.PublicLink,
	}
}

// Stats holds aggregate usage across all records.
type Stats struct {
	TotalFiles int64 `json:"total_files"`
	TotalSize  int64 `json:"total_size"`
}
