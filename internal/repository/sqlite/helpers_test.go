package sqlite

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	models "importdocs/internal/domain/models/docsystem"
	"importdocs/internal/repository/migrations"
)

func setupDB(t *testing.T) *RepositoryConfig {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migrations.Up(ctx, db, migrations.DialectSQLite, logger))

	return &RepositoryConfig{
		DB:     db,
		Logger: logger,
	}
}

func seedSupplier(t *testing.T, cfg *RepositoryConfig, name string) *models.Supplier {
	t.Helper()
	s := &models.Supplier{Name: name}
	require.NoError(t, NewSupplierRepository(cfg).Create(context.Background(), s))
	return s
}

func seedShipment(t *testing.T, cfg *RepositoryConfig, supplierID int64, name string) *models.Shipment {
	t.Helper()
	sh := &models.Shipment{Name: name, SupplierID: &supplierID}
	require.NoError(t, NewShipmentRepository(cfg).Create(context.Background(), sh))
	return sh
}

func seedFolder(t *testing.T, cfg *RepositoryConfig, name string) *models.Folder {
	t.Helper()
	f := &models.Folder{Name: name}
	require.NoError(t, NewFolderRepository(cfg).Create(context.Background(), f))
	return f
}

func seedDocument(t *testing.T, cfg *RepositoryConfig, scope models.DocumentScope, ownerID int64, name, path string) *models.Document {
	t.Helper()
	d := &models.Document{
		Scope:        scope,
		OwnerID:      ownerID,
		DocType:      "Invoice",
		OriginalName: name,
		FilePath:     path,
	}
	require.NoError(t, NewDocumentRepository(cfg).Create(context.Background(), d))
	return d
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}
