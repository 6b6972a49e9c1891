// @title Ternakku API
// @version 1.0
// @description Inventario de ganado, pekerja, keuangan y perfiles de la granja.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	blobmem "github.com/Virgo-SSS/Ternakku/internal/adapters/blob/memory"
	blobs3 "github.com/Virgo-SSS/Ternakku/internal/adapters/blob/s3"
	"github.com/Virgo-SSS/Ternakku/internal/adapters/auth/iam"
	"github.com/Virgo-SSS/Ternakku/internal/adapters/storage/postgres"
	"github.com/Virgo-SSS/Ternakku/internal/adapters/storage/sqlite"
	"github.com/Virgo-SSS/Ternakku/internal/platform/config"
	"github.com/Virgo-SSS/Ternakku/internal/platform/logger"
	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
	"github.com/Virgo-SSS/Ternakku/internal/ports/blob"
	"github.com/Virgo-SSS/Ternakku/internal/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ternakku:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App,
	})
	defer logger.Sync(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		Logger:           log,
		RefreshPerMinute: cfg.Auth.RefreshPerMinute,
		TrustProxy:       cfg.HTTP.TrustProxy,
	}

	db, dialect, err := openDB(ctx, cfg.DB)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		opts.DB = db
		opts.Dialect = dialect
		log.Info("database ready", map[string]any{"driver": dialect.String(), "auto_migrate": cfg.DB.AutoMigrate})
	} else {
		log.Warn("no database configured, using in-memory repositories", nil)
	}

	opts.Blob, err = openBlob(ctx, cfg.Blob)
	if err != nil {
		return err
	}

	iamClient, err := iam.NewClient(iam.Config{
		BaseURL:      cfg.IAM.BaseURL,
		APIKey:       cfg.IAM.APIKey,
		APIKeyHeader: cfg.IAM.APIKeyHeader,
		Timeout:      cfg.IAM.Timeout,
	})
	if err != nil {
		return err
	}
	if iamClient.IsConfigured() {
		opts.AuthVerifier = iam.NewVerifier(iamClient)
		opts.Refresher = iam.NewRefresher(iamClient)
	} else {
		// sin verifier para modo dev (X-Debug-User-ID)
		log.Warn("IAM not configured, running in dev auth mode", nil)
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.HTTP.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openDB(ctx context.Context, cfg config.DBConfig) (*sql.DB, query.Dialect, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		return nil, query.Postgres, nil
	}

	dialect, err := query.ParseDialect(driver)
	if err != nil {
		return nil, dialect, err
	}

	var (
		db      *sql.DB
		migrate func(context.Context, *sql.DB) error
	)
	switch dialect {
	case query.SQLite:
		db, err = sqlite.Open(ctx, cfg.DSN)
		migrate = sqlite.Migrate
	default:
		db, err = postgres.Open(ctx, cfg.DSN)
		migrate = postgres.Migrate
	}
	if err != nil {
		return nil, dialect, err
	}

	if cfg.AutoMigrate {
		if err := migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, dialect, err
		}
	}
	return db, dialect, nil
}

func openBlob(ctx context.Context, cfg config.BlobConfig) (blob.Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "memory":
		return blobmem.NewStore(), nil
	case "s3":
		return blobs3.New(ctx, blobs3.Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}
