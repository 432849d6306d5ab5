// Package app wires configuration into the stores and services shared by the binaries.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"importdocs/internal/blobstore"
	"importdocs/internal/config"
	"importdocs/internal/domain/repositories"
	docsysRepo "importdocs/internal/domain/repositories/docsystem"
	"importdocs/internal/repository/migrations"
	"importdocs/internal/repository/postgres"
	postgresDocsys "importdocs/internal/repository/postgres/docsystem"
	"importdocs/internal/repository/sqlite"
)

// Stores holds the metadata repositories and the blob store
type Stores struct {
	DB        *sql.DB // database/sql handle, used for health checks
	Suppliers docsysRepo.SupplierRepository
	Shipments docsysRepo.ShipmentRepository
	Folders   docsysRepo.FolderRepository
	Documents docsysRepo.DocumentRepository
	Exports   docsysRepo.ExportRepository
	TxManager repositories.TransactionManager
	Blobs     repositories.BlobStore

	closers []func()
}

// Close releases database handles in reverse order of opening
func (s *Stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// OpenStores connects the metadata store selected by DATABASE_URL, applies
// pending migrations and opens the configured blob backend.
func OpenStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Stores, error) {
	stores := &Stores{}

	var err error
	if cfg.IsPostgres() {
		err = stores.openPostgres(ctx, cfg, logger)
	} else {
		err = stores.openSQLite(ctx, cfg, logger)
	}
	if err != nil {
		stores.Close()
		return nil, err
	}

	stores.Blobs, err = openBlobStore(ctx, cfg, logger)
	if err != nil {
		stores.Close()
		return nil, err
	}

	return stores, nil
}

func (s *Stores) openSQLite(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := sqlite.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, func() { _ = db.Close() })

	if err := migrations.Up(ctx, db, migrations.DialectSQLite, logger); err != nil {
		return err
	}
	logger.Info("metadata store ready", "driver", "sqlite", "dsn", cfg.DatabaseURL)

	repoConfig := &sqlite.RepositoryConfig{DB: db, Logger: logger}
	s.DB = db
	s.Suppliers = sqlite.NewSupplierRepository(repoConfig)
	s.Shipments = sqlite.NewShipmentRepository(repoConfig)
	s.Folders = sqlite.NewFolderRepository(repoConfig)
	s.Documents = sqlite.NewDocumentRepository(repoConfig)
	s.Exports = sqlite.NewExportRepository(repoConfig)
	s.TxManager = sqlite.NewTransactionManager(repoConfig)
	return nil
}

func (s *Stores) openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, pool.Close)

	db := postgres.OpenDB(pool)
	s.closers = append(s.closers, func() { _ = db.Close() })

	if err := migrations.Up(ctx, db, migrations.DialectPostgres, logger); err != nil {
		return err
	}
	logger.Info("metadata store ready",
		"driver", "postgres",
		"max_conns", postgres.MaxConns,
		"min_conns", postgres.MinConns,
	)

	repoConfig := &postgres.RepositoryConfig{Pool: pool, Logger: logger}
	s.DB = db
	s.Suppliers = postgresDocsys.NewSupplierRepository(repoConfig)
	s.Shipments = postgresDocsys.NewShipmentRepository(repoConfig)
	s.Folders = postgresDocsys.NewFolderRepository(repoConfig)
	s.Documents = postgresDocsys.NewDocumentRepository(repoConfig)
	s.Exports = postgresDocsys.NewExportRepository(repoConfig)
	s.TxManager = postgres.NewTransactionManager(repoConfig)
	return nil
}

func openBlobStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.BlobStore, error) {
	switch cfg.BlobBackend {
	case "fs":
		logger.Info("blob store ready", "backend", "fs", "dir", cfg.UploadDir)
		return blobstore.NewFSStore(cfg.UploadDir, logger)
	case "s3":
		logger.Info("blob store ready", "backend", "s3", "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix)
		return blobstore.NewS3Store(ctx, blobstore.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Prefix:    cfg.S3Prefix,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}
