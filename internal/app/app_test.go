package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"importdocs/internal/config"
	docsysSvc "importdocs/internal/domain/services/docsystem"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sqliteConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		DatabaseURL: "file:" + filepath.Join(dir, "importer.sqlite"),
		BlobBackend: "fs",
		UploadDir:   filepath.Join(dir, "uploads"),
	}
}

func TestOpenStoresSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	stores, err := OpenStores(ctx, cfg, testLogger())
	require.NoError(t, err)
	defer stores.Close()

	require.NoError(t, stores.DB.PingContext(ctx))
	suppliers, err := stores.Suppliers.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, suppliers)

	info, err := os.Stat(cfg.UploadDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenStoresReopensMigratedDatabase(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)
	logger := testLogger()

	stores, err := OpenStores(ctx, cfg, logger)
	require.NoError(t, err)
	services := NewServices(stores, NewConverter(cfg, logger), logger)
	_, err = services.Suppliers.CreateSupplier(ctx, &docsysSvc.CreateContainerRequest{Name: "Acme"})
	require.NoError(t, err)
	stores.Close()

	stores, err = OpenStores(ctx, cfg, logger)
	require.NoError(t, err)
	defer stores.Close()

	suppliers, err := stores.Suppliers.List(ctx)
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	assert.Equal(t, "Acme", suppliers[0].Name)
}

func TestOpenStoresUnknownBlobBackend(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.BlobBackend = "ftp"

	_, err := OpenStores(context.Background(), cfg, testLogger())

	assert.ErrorContains(t, err, `unknown blob backend "ftp"`)
}

func TestNewConverterWithoutSecret(t *testing.T) {
	cfg := sqliteConfig(t)
	c := NewConverter(cfg, testLogger())

	assert.Equal(t, "convertapi", c.Name())
}
