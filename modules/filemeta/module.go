package filemeta

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/earl-box/events"
	"github.com/example/earl-box/modules/cache"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/gorm"
)

// Service names registered by the module. The framework prefixes them
// with "services.filemeta.".
const (
	ServiceUploadFile    = "upload-file"
	ServiceGetFileByLink = "get-file-by-link"
	ServiceGetFileStats  = "get-file-stats"
)

// Config configures the file metadata module.
type Config struct {
	Database DatabaseConfig
	// RedisAddr enables the lookup cache when non-empty.
	RedisAddr string
	CacheTTL  time.Duration
}

// Module owns the metadata database and exposes the file services.
type Module struct {
	cfg      Config
	db       *gorm.DB
	cache    *cache.Cache
	service  *Service
	eventBus mono.EventBus
	logger   types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
	_ mono.EventBusAwareModule   = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
)

// NewModule creates a new file metadata module.
func NewModule(cfg Config, logger types.Logger) *Module {
	return &Module{
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "filemeta"
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.FileUploadedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceUploadFile, json.Unmarshal, json.Marshal, m.handleUploadFile,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceUploadFile, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGetFileByLink, json.Unmarshal, json.Marshal, m.handleGetFileByLink,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGetFileByLink, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGetFileStats, json.Unmarshal, json.Marshal, m.handleGetFileStats,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGetFileStats, err)
	}

	m.logger.Info("Registered services",
		"services", []string{ServiceUploadFile, ServiceGetFileByLink, ServiceGetFileStats})
	return nil
}

// Start opens the database, runs migrations and connects the optional cache.
func (m *Module) Start(ctx context.Context) error {
	m.logger.Info("Connecting to metadata database", "driver", m.cfg.Database.Driver)

	db, err := OpenDatabase(m.cfg.Database)
	if err != nil {
		return err
	}
	m.db = db

	var linkCache LinkCache
	if m.cfg.RedisAddr != "" {
		cacheCfg := cache.DefaultConfig()
		cacheCfg.RedisAddr = m.cfg.RedisAddr
		if m.cfg.CacheTTL > 0 {
			cacheCfg.TTL = m.cfg.CacheTTL
		}
		c, err := cache.Connect(ctx, cacheCfg)
		if err != nil {
			_ = CloseDatabase(db)
			return err
		}
		m.cache = c
		linkCache = c
		m.logger.Info("Lookup cache enabled", "redisAddr", cacheCfg.RedisAddr, "ttl", cacheCfg.TTL)
	}

	m.service = NewService(NewRepository(db), linkCache, m.logger)

	m.logger.Info("File metadata module started")
	return nil
}

// Stop closes the cache and database connections.
func (m *Module) Stop(_ context.Context) error {
	if m.cache != nil {
		if err := m.cache.Close(); err != nil {
			m.logger.Warn("Error closing Redis connection", "error", err)
		}
	}
	if m.db == nil {
		return nil
	}

	m.logger.Info("Closing database connection...")
	if err := CloseDatabase(m.db); err != nil {
		return err
	}
	m.logger.Info("File metadata module stopped")
	return nil
}

// Health performs a health check on the metadata database and cache.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	details := map[string]any{
		"driver": m.cfg.Database.Driver,
		"cache":  "disabled",
	}
	if m.cache != nil {
		if err := m.cache.Ping(ctx); err != nil {
			// Lookups still work without the cache.
			details["cache"] = fmt.Sprintf("unreachable: %v", err)
		} else {
			details["cache"] = m.cache.Stats()
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}

// Service returns the file metadata service.
func (m *Module) Service() *Service {
	return m.service
}
