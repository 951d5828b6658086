package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/driftfs/driftfs/backends"
	"github.com/driftfs/driftfs/backends/localfs"
	"github.com/driftfs/driftfs/backends/noop"
	"github.com/driftfs/driftfs/backends/s3"
	"github.com/driftfs/driftfs/config"
	"github.com/driftfs/driftfs/server"
)

var rootCmd = &cobra.Command{
	Use:   "driftfs",
	Short: "driftfs - filesystem API over pluggable storage backends",
	Long: `driftfs exposes a filesystem-style API over pluggable storage
backends (local filesystem, S3, cloud drive clients).`,
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the driftfs server",
	Long:  "Start the driftfs server with the configured backend and API endpoints",
	RunE:  runServer,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long:  "Validate the driftfs configuration and display the loaded settings",
	RunE:  validateConfig,
}

var configFilePath string

func main() {
	serverCmd.Flags().StringVarP(&configFilePath, "config", "c", "", "Path to configuration file")

	configCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serverCmd, configCmd)

	// If no command specified, default to server
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "server")
	}

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// runServer starts the driftfs server
func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigFromFile(configFilePath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := initializeLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to sync logger: %v\n", err)
		}
	}()

	logger.Info("Starting driftfs server",
		zap.String("listen_addr", cfg.Server.ListenAddr),
		zap.String("backend", cfg.Backend.DefaultBackend))

	fs, err := initializeBackend(cfg.Backend, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize backend: %w", err)
	}
	defer fs.Close()

	router := server.NewRouter(fs, cfg.Backend.DefaultBackend, &cfg, logger)

	srv := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", cfg.Server.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server exited gracefully")
	return nil
}

// initializeBackend builds the configured storage backend
func initializeBackend(cfg config.BackendConfig, logger *zap.Logger) (backends.Filesystem, error) {
	switch cfg.DefaultBackend {
	case "localfs":
		logger.Info("Initializing LocalFS backend", zap.String("root_path", cfg.LocalFSRootPath))
		return localfs.New(cfg.LocalFSRootPath)
	case "s3":
		logger.Info("Initializing S3 backend",
			zap.String("bucket", cfg.S3BucketName),
			zap.String("key_prefix", cfg.S3KeyPrefix))
		return s3.New(cfg, logger)
	case "noop":
		logger.Warn("Using noop backend; every operation will fail")
		return noop.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.DefaultBackend)
	}
}

// validateConfig validates the driftfs configuration and displays settings
func validateConfig(cmd *cobra.Command, args []string) error {
	fmt.Println("Validating configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Configuration validation failed: %v\n", err)
		return err
	}

	fmt.Println("Configuration is valid")
	fmt.Printf("Listen Address: %s\n", cfg.Server.ListenAddr)
	fmt.Printf("Default Backend: %s\n", cfg.Backend.DefaultBackend)
	fmt.Printf("Local FS Root: %s\n", cfg.Backend.LocalFSRootPath)
	if cfg.Backend.S3BucketName != "" {
		fmt.Printf("S3 Bucket: %s\n", cfg.Backend.S3BucketName)
		fmt.Printf("S3 Region: %s\n", cfg.Backend.S3Region)
		fmt.Printf("S3 Key Prefix: %s\n", cfg.Backend.S3KeyPrefix)
	}

	return nil
}

// initializeLogger creates a zap logger based on configuration
func initializeLogger(logCfg config.LogConfig) (*zap.Logger, error) {
	var cfg zap.Config

	if logCfg.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	switch logCfg.Level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	return cfg.Build()
}
