package filemeta

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/example/earl-box/domain/file"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// FileMetaPort defines the interface for interacting with the filemeta module.
// Consumers should use this interface instead of directly referencing the Module.
type FileMetaPort interface {
	UploadFile(ctx context.Context, req UploadFileRequest) (*file.Record, error)
	// GetFileByLink returns nil, nil when no record has the link.
	GetFileByLink(ctx context.Context, link string) (*file.Record, error)
	GetFileStats(ctx context.Context) (*file.Stats, error)
}

// fileMetaAdapter implements FileMetaPort using the service container.
type fileMetaAdapter struct {
	container mono.ServiceContainer
}

// NewFileMetaAdapter creates a new adapter for the filemeta services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewFileMetaAdapter(container mono.ServiceContainer) FileMetaPort {
	if container == nil {
		panic("filemeta adapter requires non-nil ServiceContainer")
	}
	return &fileMetaAdapter{container: container}
}

// UploadFile creates a file record via the upload-file service.
func (a *fileMetaAdapter) UploadFile(ctx context.Context, req UploadFileRequest) (*file.Record, error) {
	var resp file.Record
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceUploadFile,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(err)
	}
	return &resp, nil
}

// GetFileByLink looks a record up via the get-file-by-link service.
func (a *fileMetaAdapter) GetFileByLink(ctx context.Context, link string) (*file.Record, error) {
	req := GetFileByLinkRequest{PublicLink: &link}
	var resp GetFileByLinkResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGetFileByLink,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(err)
	}

	if !resp.Found {
		return nil, nil
	}
	return resp.File, nil
}

// GetFileStats retrieves aggregate stats via the get-file-stats service.
func (a *fileMetaAdapter) GetFileStats(ctx context.Context) (*file.Stats, error) {
	var resp file.Stats
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGetFileStats,
		json.Marshal,
		json.Unmarshal,
		GetFileStatsRequest{},
		&resp,
	); err != nil {
		return nil, mapServiceError(err)
	}
	return &resp, nil
}

var validationErrorPattern = regexp.MustCompile(`validation failed: field "([^"]*)" violates rule "([^"]*)"`)

// mapServiceError converts service errors back to typed errors by checking
// the error message content. Errors lose their type information when sent
// over NATS.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()

	if m := validationErrorPattern.FindStringSubmatch(msg); m != nil {
		return &ValidationError{Field: m[1], Rule: m[2]}
	}
	if strings.Contains(msg, ErrDuplicateLink.Error()) {
		return ErrDuplicateLink
	}

	return err
}
