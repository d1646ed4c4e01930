package api

import (
	"errors"
	"time"

	"github.com/example/earl-box/modules/filemeta"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

const publicLinkParam = "public_link"

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	files  filemeta.FileMetaPort
	logger types.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(files filemeta.FileMetaPort, logger types.Logger) *Handlers {
	return &Handlers{
		files:  files,
		logger: logger,
	}
}

// Health reports liveness.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}

// UploadFile handles POST /api/v1/files.
func (h *Handlers) UploadFile(c *fiber.Ctx) error {
	var req filemeta.UploadFileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	record, err := h.files.UploadFile(c.UserContext(), req)
	if err != nil {
		return h.handleFileMetaError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// GetFileByLink handles GET /api/v1/files/by-link. An unknown link is
// answered with 200 and a null body.
func (h *Handlers) GetFileByLink(c *fiber.Ctx) error {
	// An empty value is a valid link; only a missing parameter is rejected.
	if !c.Context().QueryArgs().Has(publicLinkParam) {
		return h.handleFileMetaError(c, &filemeta.ValidationError{
			Field: filemeta.FieldPublicLink,
			Rule:  filemeta.RuleRequired,
		})
	}

	record, err := h.files.GetFileByLink(c.UserContext(), c.Query(publicLinkParam))
	if err != nil {
		return h.handleFileMetaError(c, err)
	}
	if record == nil {
		return c.JSON(nil)
	}
	return c.JSON(record)
}

// GetStats handles GET /api/v1/stats.
func (h *Handlers) GetStats(c *fiber.Ctx) error {
	stats, err := h.files.GetFileStats(c.UserContext())
	if err != nil {
		return h.handleFileMetaError(c, err)
	}
	return c.JSON(stats)
}

// handleFileMetaError maps filemeta errors to HTTP responses.
func (h *Handlers) handleFileMetaError(c *fiber.Ctx, err error) error {
	var verr *filemeta.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: verr.Error(),
			Field:   verr.Field,
			Rule:    verr.Rule,
		})
	case errors.Is(err, filemeta.ErrDuplicateLink):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "Public link already exists",
		})
	default:
		h.logger.Error("File metadata request failed", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "server_error",
			Message: "Internal Server Error",
		})
	}
}
