package filemeta

import (
	"context"
	"errors"

	"github.com/example/earl-box/domain/file"
	"github.com/go-monolith/mono/pkg/types"
	"golang.org/x/sync/singleflight"
)

// Store is the persistence contract the service relies on.
type Store interface {
	Insert(ctx context.Context, meta file.Metadata) (*file.Record, error)
	FindByLink(ctx context.Context, link string) (*file.Record, bool, error)
	Aggregate(ctx context.Context) (file.Stats, error)
}

// LinkCache caches records by public link.
type LinkCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// Service implements upload, lookup and stats on top of a Store.
type Service struct {
	store   Store
	cache   LinkCache
	logger  types.Logger
	sfGroup singleflight.Group
}

// NewService creates a new file metadata service. cache may be nil.
func NewService(store Store, cache LinkCache, logger types.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// Upload validates the request and persists it. Validation and duplicate
// link errors are returned as-is.
func (s *Service) Upload(ctx context.Context, req UploadFileRequest) (*file.Record, error) {
	meta, err := Validate(req)
	if err != nil {
		uploadsTotal.WithLabelValues("invalid").Inc()
		s.logger.Debug("Rejected upload", "error", err)
		return nil, err
	}

	record, err := s.store.Insert(ctx, meta)
	if err != nil {
		if errors.Is(err, ErrDuplicateLink) {
			uploadsTotal.WithLabelValues("duplicate").Inc()
			s.logger.Warn("Duplicate public link", "publicLink", meta.PublicLink)
			return nil, err
		}
		uploadsTotal.WithLabelValues("error").Inc()
		s.logger.Error("File upload failed", "publicLink", meta.PublicLink, "error", err)
		return nil, err
	}

	uploadsTotal.WithLabelValues("created").Inc()
	s.logger.Info("File uploaded",
		"id", record.ID,
		"publicLink", record.PublicLink,
		"size", record.FileSize)
	return record, nil
}

// GetByLink returns the record with the given public link, or nil when
// there is none.
func (s *Service) GetByLink(ctx context.Context, link string) (*file.Record, error) {
	if s.cache != nil {
		var cached file.Record
		found, err := s.cache.Get(ctx, link, &cached)
		if err != nil {
			s.logger.Warn("Cache read failed, falling back to store", "publicLink", link, "error", err)
		}
		if found {
			lookupsTotal.WithLabelValues("cache_hit").Inc()
			return &cached, nil
		}
	}

	// The shared lookup must not be cancelled by whichever caller started it.
	flightCtx := context.WithoutCancel(ctx)
	ch := s.sfGroup.DoChan(link, func() (any, error) {
		record, found, err := s.store.FindByLink(flightCtx, link)
		if err != nil || !found {
			return nil, err
		}
		return record, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		lookupsTotal.WithLabelValues("error").Inc()
		s.logger.Error("Failed to retrieve file by public link", "publicLink", link, "error", res.Err)
		return nil, res.Err
	}

	record, _ := res.Val.(*file.Record)
	if record == nil {
		lookupsTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	lookupsTotal.WithLabelValues("hit").Inc()

	// Records never change once written; misses are never cached.
	if s.cache != nil {
		if err := s.cache.Set(ctx, link, record); err != nil {
			s.logger.Warn("Failed to cache file record", "publicLink", link, "error", err)
		}
	}
	return record, nil
}

// GetStats returns the current record count and total size.
func (s *Service) GetStats(ctx context.Context) (file.Stats, error) {
	statsRequestsTotal.Inc()

	stats, err := s.store.Aggregate(ctx)
	if err != nil {
		s.logger.Error("File stats query failed", "error", err)
		return file.Stats{}, err
	}
	return stats, nil
}
