package docsystem

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"importdocs/internal/domain"
	models "importdocs/internal/domain/models/docsystem"
	"importdocs/internal/repository/migrations"
	"importdocs/internal/repository/postgres"
)

func postgresIntegrationDSN(t *testing.T) string {
	t.Helper()
	dsn := strings.TrimSpace(os.Getenv("IMPORTDOCS_TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("set IMPORTDOCS_TEST_POSTGRES_DSN to run Postgres integration tests")
	}
	return dsn
}

// setupPostgres migrates the database and empties every table
func setupPostgres(t *testing.T) *postgres.RepositoryConfig {
	t.Helper()
	dsn := postgresIntegrationDSN(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.CreateConnectionPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db := postgres.OpenDB(pool)
	require.NoError(t, migrations.Up(ctx, db, migrations.DialectPostgres, slog.New(slog.DiscardHandler)))

	_, err = pool.Exec(ctx, `TRUNCATE folder_documents, folders, documents, shipments, suppliers RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return &postgres.RepositoryConfig{
		Pool:   pool,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestPostgresIntegration_HierarchyAndCascade(t *testing.T) {
	cfg := setupPostgres(t)
	ctx := context.Background()

	suppliers := NewSupplierRepository(cfg)
	shipments := NewShipmentRepository(cfg)
	docs := NewDocumentRepository(cfg)
	export := NewExportRepository(cfg)

	acme := &models.Supplier{Name: "Acme"}
	require.NoError(t, suppliers.Create(ctx, acme))
	assert.ErrorIs(t, suppliers.Create(ctx, &models.Supplier{Name: "Acme"}), domain.ErrConflict)

	jan := &models.Shipment{Name: "Jan", SupplierID: &acme.ID}
	require.NoError(t, shipments.Create(ctx, jan))

	missing := int64(999)
	assert.ErrorIs(t, shipments.Create(ctx, &models.Shipment{Name: "X", SupplierID: &missing}), domain.ErrNotFound)

	doc := &models.Document{Scope: models.ScopeShipment, OwnerID: jan.ID, DocType: "Invoice", OriginalName: "inv.pdf", FilePath: "k1"}
	require.NoError(t, docs.Create(ctx, doc))

	dup := &models.Document{Scope: models.ScopeShipment, OwnerID: jan.ID, DocType: "Invoice", OriginalName: "inv.pdf", FilePath: "k1"}
	var conflict *domain.ConflictError
	assert.True(t, errors.As(docs.Create(ctx, dup), &conflict))

	got, err := shipments.GetByID(ctx, jan.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SupplierName)
	assert.Equal(t, "Acme", *got.SupplierName)

	count, err := export.CountEntries(ctx, models.ExportScope{SupplierID: &acme.ID})
	require.NoError(t, err)
	entries, err := export.ListEntries(ctx, models.ExportScope{SupplierID: &acme.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"Acme", "Jan"}, entries[0].Owners)

	require.NoError(t, suppliers.Delete(ctx, acme.ID))
	_, err = docs.GetByID(ctx, models.ScopeShipment, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresIntegration_ReplaceInTransaction(t *testing.T) {
	cfg := setupPostgres(t)
	ctx := context.Background()

	folders := NewFolderRepository(cfg)
	docs := NewDocumentRepository(cfg)
	tm := postgres.NewTransactionManager(cfg)

	certs := &models.Folder{Name: "Certs"}
	require.NoError(t, folders.Create(ctx, certs))

	doc := &models.Document{Scope: models.ScopeFolder, OwnerID: certs.ID, DocType: "Cert", OriginalName: "iso.pdf", FilePath: "old"}
	require.NoError(t, docs.Create(ctx, doc))

	var oldPath string
	err := tm.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		if oldPath, err = docs.GetFilePathForUpdate(txCtx, models.ScopeFolder, doc.ID); err != nil {
			return err
		}
		return docs.UpdateFile(txCtx, models.ScopeFolder, doc.ID, "new", "iso-v2.pdf")
	})
	require.NoError(t, err)
	assert.Equal(t, "old", oldPath)

	got, err := docs.GetByID(ctx, models.ScopeFolder, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.FilePath)
	assert.Equal(t, "iso-v2.pdf", got.OriginalName)
}
