package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/earl-box/modules/api"
	"github.com/example/earl-box/modules/filemeta"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

// appConfig holds configuration read from the environment.
type appConfig struct {
	FileMeta filemeta.Config
	API      api.Config
}

func main() {
	log.Println("=== Earl Box ===")
	log.Println("Media file metadata service")

	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// api depends on filemeta and receives its service container
	app.Register(filemeta.NewModule(cfg.FileMeta, app.Logger()))
	app.Register(api.NewModule(cfg.API, app.Logger()))

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// loadConfig builds the application configuration from environment variables.
func loadConfig() (appConfig, error) {
	db := filemeta.DatabaseConfig{
		Driver: getEnv("DB_DRIVER", filemeta.DriverSQLite),
		Debug:  getEnvBool("DB_DEBUG", false),
	}
	switch db.Driver {
	case filemeta.DriverSQLite:
		db.DSN = getEnv("DB_PATH", "earlbox.db")
	case filemeta.DriverPostgres:
		db.DSN = os.Getenv("DATABASE_URL")
		if db.DSN == "" {
			return appConfig{}, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=%s", filemeta.DriverPostgres)
		}
	default:
		return appConfig{}, fmt.Errorf("unsupported DB_DRIVER %q", db.Driver)
	}

	return appConfig{
		FileMeta: filemeta.Config{
			Database:  db,
			RedisAddr: os.Getenv("REDIS_ADDR"),
			CacheTTL:  getEnvDuration("CACHE_TTL", 10*time.Minute),
		},
		API: api.Config{
			Port:         getEnvInt("HTTP_PORT", 2022),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
	}, nil
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}

func printStartupInfo(cfg appConfig) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("Database: %s", cfg.FileMeta.Database.Driver)
	if cfg.FileMeta.RedisAddr != "" {
		log.Printf("Lookup cache: redis at %s (ttl %s)", cfg.FileMeta.RedisAddr, cfg.FileMeta.CacheTTL)
	} else {
		log.Println("Lookup cache: disabled")
	}
	log.Println("")
	log.Printf("HTTP API on :%d", cfg.API.Port)
	log.Println("  POST /api/v1/files                        - Record uploaded file metadata")
	log.Println("  GET  /api/v1/files/by-link?public_link=X  - Look up a file by public link")
	log.Println("  GET  /api/v1/stats                        - Total file count and size")
	log.Println("  GET  /health                              - Health check")
	log.Println("  GET  /metrics                             - Prometheus metrics")
	log.Println("")
	log.Println("Services (via NATS request-reply):")
	log.Println("  services.filemeta.upload-file")
	log.Println("  services.filemeta.get-file-by-link")
	log.Println("  services.filemeta.get-file-stats")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
