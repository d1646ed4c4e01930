package filemeta

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/example/earl-box/domain/file"
)

// MaxFileSize is the largest accepted file size in bytes (200 MiB, inclusive).
const MaxFileSize int64 = 200 * 1024 * 1024

const (
	maxNameLength     = 255
	maxMimeTypeLength = 100
	maxLinkLength     = 255
)

// Field names reported in validation errors.
const (
	FieldFilename     = "filename"
	FieldOriginalName = "original_name"
	FieldFilePath     = "file_path"
	FieldFileSize     = "file_size"
	FieldMimeType     = "mime_type"
	FieldPublicLink   = "public_link"
)

// Rule identifiers reported in validation errors.
const (
	RuleRequired      = "required"
	RuleMaxSize       = "max_size"
	RuleAllowedPrefix = "allowed_prefix"
	RuleMaxLength     = "max_length"
)

var allowedMimePrefixes = []string{"image/", "video/"}

// ValidationError names the field and rule an upload request violated.
type ValidationError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field %q violates rule %q", e.Field, e.Rule)
}

// Validate checks an upload request and returns the validated metadata.
// It stops at the first violation.
func Validate(req UploadFileRequest) (file.Metadata, error) {
	if req.FileSize == nil {
		return file.Metadata{}, &ValidationError{Field: FieldFileSize, Rule: RuleRequired}
	}
	if *req.FileSize < 0 || *req.FileSize > MaxFileSize {
		return file.Metadata{}, &ValidationError{Field: FieldFileSize, Rule: RuleMaxSize}
	}

	if req.MimeType == nil {
		return file.Metadata{}, &ValidationError{Field: FieldMimeType, Rule: RuleRequired}
	}
	if !hasAllowedPrefix(*req.MimeType) {
		return file.Metadata{}, &ValidationError{Field: FieldMimeType, Rule: RuleAllowedPrefix}
	}
	if err := checkLength(FieldMimeType, *req.MimeType, maxMimeTypeLength); err != nil {
		return file.Metadata{}, err
	}

	strs := []struct {
		field string
		value *string
		max   int
	}{
		{FieldFilename, req.Filename, maxNameLength},
		{FieldOriginalName, req.OriginalName, maxNameLength},
		{FieldFilePath, req.FilePath, 0},
		{FieldPublicLink, req.PublicLink, maxLinkLength},
	}
	for _, s := range strs {
		if s.value == nil {
			return file.Metadata{}, &ValidationError{Field: s.field, Rule: RuleRequired}
		}
		if s.max > 0 {
			if err := checkLength(s.field, *s.value, s.max); err != nil {
				return file.Metadata{}, err
			}
		}
	}

	return file.Metadata{
		Filename:     *req.Filename,
		OriginalName: *req.OriginalName,
		FilePath:     *req.FilePath,
		FileSize:     *req.FileSize,
		MimeType:     *req.MimeType,
		PublicLink:   *req.PublicLink,
	}, nil
}

func hasAllowedPrefix(mimeType string) bool {
	for _, prefix := range allowedMimePrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			return true
		}
	}
	return false
}

// checkLength counts characters, not bytes, to match varchar(n).
func checkLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return &ValidationError{Field: field, Rule: RuleMaxLength}
	}
	return nil
}
