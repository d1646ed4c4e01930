package filemeta

import (
	"context"

	"github.com/example/earl-box/domain/file"
	"github.com/example/earl-box/events"
	"github.com/go-monolith/mono"
)

// handleUploadFile handles the upload-file service request.
func (m *Module) handleUploadFile(ctx context.Context, req UploadFileRequest, _ *mono.Msg) (file.Record, error) {
	record, err := m.service.Upload(ctx, req)
	if err != nil {
		return file.Record{}, err
	}

	if m.eventBus != nil {
		event := events.FileUploadedEvent{
			ID:         record.ID,
			PublicLink: record.PublicLink,
			FileSize:   record.FileSize,
			MimeType:   record.MimeType,
			UploadedAt: record.UploadedAt,
		}
		if err := events.FileUploadedV1.Publish(m.eventBus, event, nil); err != nil {
			// Best-effort: the row is already committed.
			m.logger.Warn("Failed to publish FileUploaded event", "id", record.ID, "error", err)
		}
	}

	return *record, nil
}

// handleGetFileByLink handles the get-file-by-link service request.
func (m *Module) handleGetFileByLink(ctx context.Context, req GetFileByLinkRequest, _ *mono.Msg) (GetFileByLinkResponse, error) {
	if req.PublicLink == nil {
		return GetFileByLinkResponse{}, &ValidationError{Field: FieldPublicLink, Rule: RuleRequired}
	}

	record, err := m.service.GetByLink(ctx, *req.PublicLink)
	if err != nil {
		return GetFileByLinkResponse{}, err
	}
	if record == nil {
		return GetFileByLinkResponse{Found: false}, nil
	}
	return GetFileByLinkResponse{Found: true, File: record}, nil
}

// handleGetFileStats handles the get-file-stats service request.
func (m *Module) handleGetFileStats(ctx context.Context, _ GetFileStatsRequest, _ *mono.Msg) (file.Stats, error) {
	return m.service.GetStats(ctx)
}
