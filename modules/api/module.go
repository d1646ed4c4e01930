package api

import (
	"context"
	"fmt"

	"github.com/example/earl-box/modules/filemeta"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures the HTTP edge.
type Config struct {
	Port         int
	AllowOrigins string
}

// APIModule is the HTTP API module.
type APIModule struct {
	cfg           Config
	app           *fiber.App
	fileContainer mono.ServiceContainer
	files         filemeta.FileMetaPort
	logger        types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(cfg Config, logger types.Logger) *APIModule {
	if cfg.AllowOrigins == "" {
		cfg.AllowOrigins = "*"
	}
	return &APIModule{
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"filemeta"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "filemeta":
		m.fileContainer = container
		m.files = filemeta.NewFileMetaAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.fileContainer == nil {
		return fmt.Errorf("filemeta dependency not set")
	}

	m.app = newApp(m.cfg, NewHandlers(m.files, m.logger))

	addr := fmt.Sprintf(":%d", m.cfg.Port)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			m.logger.Error("HTTP server error", "error", err)
		}
	}()

	m.logger.Info("HTTP server started", "addr", addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	m.logger.Info("Shutting down HTTP server...")
	return m.app.ShutdownWithContext(ctx)
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.cfg.Port,
		},
	}
}

// newApp builds the Fiber application with middleware and routes.
func newApp(cfg Config, handlers *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
	}))
	app.Use(MetricsMiddleware())

	app.Get("/health", handlers.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")
	v1.Post("/files", handlers.UploadFile)
	v1.Get("/files/by-link", handlers.GetFileByLink)
	v1.Get("/stats", handlers.GetStats)

	return app
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
