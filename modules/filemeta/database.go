package filemeta

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfig selects and configures the metadata database.
type DatabaseConfig struct {
	Driver string
	DSN    string
	Debug  bool
}

// OpenDatabase opens the configured database and runs migrations.
// Unique-index violations surface as gorm.ErrDuplicatedKey.
func OpenDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite, "":
		dialector = sqlite.Open(sqliteDSN(cfg.DSN))
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver != DriverPostgres && isMemoryDSN(cfg.DSN) {
		// Every connection to :memory: is a separate database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&UploadedFile{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// CloseDatabase closes the connection pool behind db.
func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == "" || strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// sqliteDSN enables WAL and a busy timeout for file databases so readers
// never block on a concurrent insert.
func sqliteDSN(dsn string) string {
	if isMemoryDSN(dsn) {
		if dsn == "" {
			return ":memory:"
		}
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?_journal_mode=WAL&_busy_timeout=5000"
}
