package filemeta

import (
	"time"

	"github.com/example/earl-box/domain/file"
)

// UploadedFile is the persisted row of a file record.
type UploadedFile struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Filename     string    `gorm:"size:255;not null"`
	OriginalName string    `gorm:"size:255;not null"`
	FilePath     string    `gorm:"type:text;not null"`
	FileSize     int64     `gorm:"not null"`
	MimeType     string    `gorm:"size:100;not null"`
	PublicLink   string    `gorm:"size:255;not null;uniqueIndex:idx_uploaded_files_public_link"`
	UploadedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for UploadedFile model.
func (UploadedFile) TableName() string {
	return "uploaded_files"
}

func newUploadedFile(meta file.Metadata, uploadedAt time.Time) UploadedFile {
	return UploadedFile{
		Filename:     meta.Filename,
		OriginalName: meta.OriginalName,
		FilePath:     meta.FilePath,
		FileSize:     meta.FileSize,
		MimeType:     meta.MimeType,
		PublicLink:   meta.PublicLink,
		UploadedAt:   uploadedAt,
	}
}

func (u *UploadedFile) toRecord() *file.Record {
	return &file.Record{
		ID:           u.ID,
		Filename:     u.Filename,
		OriginalName: u.OriginalName,
		FilePath:     u.FilePath,
		FileSize:     u.FileSize,
		MimeType:     u.MimeType,
		PublicLink:   u.PublicLink,
		UploadedAt:   u.UploadedAt,
	}
}
