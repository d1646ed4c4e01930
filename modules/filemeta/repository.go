package filemeta

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/earl-box/domain/file"
	"gorm.io/gorm"
)

// Repository is the GORM-backed metadata store.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new metadata repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Insert assigns an ID and upload time and writes the row in a single
// statement. A colliding public link fails with ErrDuplicateLink.
func (r *Repository) Insert(ctx context.Context, meta file.Metadata) (*file.Record, error) {
	row := newUploadedFile(meta, uploadTimestamp(r.now()))

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLink, meta.PublicLink)
		}
		return nil, &PersistenceError{Op: "insert", Err: err}
	}
	return row.toRecord(), nil
}

// FindByLink returns the record whose public link matches exactly.
// The boolean is false when there is no such record.
func (r *Repository) FindByLink(ctx context.Context, link string) (*file.Record, bool, error) {
	var row UploadedFile
	err := r.db.WithContext(ctx).Where("public_link = ?", link).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, &PersistenceError{Op: "find by link", Err: err}
	}
	return row.toRecord(), true, nil
}

// Aggregate counts all records and sums their sizes in one query.
func (r *Repository) Aggregate(ctx context.Context) (file.Stats, error) {
	var result struct {
		TotalFiles int64
		TotalSize  int64
	}
	err := r.db.WithContext(ctx).
		Model(&UploadedFile{}).
		Select("COUNT(*) AS total_files, CAST(COALESCE(SUM(file_size), 0) AS BIGINT) AS total_size").
		Scan(&result).Error
	if err != nil {
		return file.Stats{}, &PersistenceError{Op: "aggregate", Err: err}
	}
	return file.Stats{TotalFiles: result.TotalFiles, TotalSize: result.TotalSize}, nil
}

// uploadTimestamp rounds now up to the next microsecond, the precision
// Postgres keeps, so the stored value is never earlier than the call.
func uploadTimestamp(now time.Time) time.Time {
	ts := now.UTC().Truncate(time.Microsecond)
	if ts.Before(now) {
		ts = ts.Add(time.Microsecond)
	}
	return ts
}
