package filemeta

import "github.com/example/earl-box/domain/file"

// UploadFileRequest is the request for the upload-file service.
// Pointer fields distinguish a missing value from an empty one.
type UploadFileRequest struct {
	Filename     *string `json:"filename"`
	OriginalName *string `json:"original_name"`
	FilePath     *string `json:"file_path"`
	FileSize     *int64  `json:"file_size"`
	MimeType     *string `json:"mime_type"`
	PublicLink   *string `json:"public_link"`
}

// NewUploadFileRequest builds a request with every field present.
func NewUploadFileRequest(meta file.Metadata) UploadFileRequest {
	return UploadFileRequest{
		Filename:     &meta.Filename,
		OriginalName: &meta.OriginalName,
		FilePath:     &meta.FilePath,
		FileSize:     &meta.FileSize,
		MimeType:     &meta.MimeType,
		PublicLink:   &meta.PublicLink,
	}
}

// GetFileByLinkRequest is the request for the get-file-by-link service.
type GetFileByLinkRequest struct {
	PublicLink *string `json:"public_link"`
}

// GetFileByLinkResponse carries the lookup result. Found is false when no
// record has the requested link; that is not an error.
type GetFileByLinkResponse struct {
	Found bool         `json:"found"`
	File  *file.Record `json:"file,omitempty"`
}

// GetFileStatsRequest is the (empty) request for the get-file-stats service.
type GetFileStatsRequest struct{}
