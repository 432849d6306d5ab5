package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"importdocs/internal/domain"
	models "importdocs/internal/domain/models/docsystem"
)

func TestDocumentRepository_CreateBothScopes(t *testing.T) {
	cfg := setupDB(t)
	repo := NewDocumentRepository(cfg)
	ctx := context.Background()

	s := seedSupplier(t, cfg, "Acme")
	sh := seedShipment(t, cfg, s.ID, "Jan")
	f := seedFolder(t, cfg, "Certs")

	shipDoc := seedDocument(t, cfg, models.ScopeShipment, sh.ID, "inv.pdf", "1-inv.pdf")
	folderDoc := seedDocument(t, cfg, models.ScopeFolder, f.ID, "iso.pdf", "1-iso.pdf")

	got, err := repo.GetByID(ctx, models.ScopeShipment, shipDoc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ScopeShipment, got.Scope)
	assert.Equal(t, sh.ID, got.OwnerID)
	assert.Equal(t, "inv.pdf", got.OriginalName)
	assert.Equal(t, "1-inv.pdf", got.FilePath)
	assert.False(t, got.CreatedAt.IsZero())

	got, err = repo.GetByID(ctx, models.ScopeFolder, folderDoc.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.OwnerID)

	assert.Equal(t, 1, countRows(t, cfg.DB, "documents"))
	assert.Equal(t, 1, countRows(t, cfg.DB, "folder_documents"))
}

func TestDocumentRepository_CreateMissingOwner(t *testing.T) {
	cfg := setupDB(t)

	err := NewDocumentRepository(cfg).Create(context.Background(), &models.Document{
		Scope:        models.ScopeShipment,
		OwnerID:      123,
		DocType:      "Invoice",
		OriginalName: "inv.pdf",
		FilePath:     "1-inv.pdf",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, countRows(t, cfg.DB, "documents"))
}

func TestDocumentRepository_DuplicateFilePath(t *testing.T) {
	cfg := setupDB(t)
	s := seedSupplier(t, cfg, "Acme")
	sh := seedShipment(t, cfg, s.ID, "Jan")
	seedDocument(t, cfg, models.ScopeShipment, sh.ID, "inv.pdf", "same.pdf")

	err := NewDocumentRepository(cfg).Create(context.Background(), &models.Document{
		Scope:        models.ScopeShipment,
		OwnerID:      sh.ID,
		DocType:      "Invoice",
		OriginalName: "inv2.pdf",
		FilePath:     "same.pdf",
	})
	require.Error(t, err)
	var conflict *domain.ConflictError
	assert.True(t, errors.As(err, &conflict))
}

func TestDocumentRepository_UnknownScope(t *testing.T) {
	cfg := setupDB(t)
	_, err := NewDocumentRepository(cfg).GetByID(context.Background(), models.DocumentScope("crate"), 1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDocumentRepository_ListByOwnerNewestFirst(t *testing.T) {
	cfg := setupDB(t)
	s := seedSupplier(t, cfg, "Acme")
	sh := seedShipment(t, cfg, s.ID, "Jan")
	other := seedShipment(t, cfg, s.ID, "Feb")

	a := seedDocument(t, cfg, models.ScopeShipment, sh.ID, "a.pdf", "1-a.pdf")
	b := seedDocument(t, cfg, models.ScopeShipment, sh.ID, "b.pdf", "2-b.pdf")
	seedDocument(t, cfg, models.ScopeShipment, other.ID, "c.pdf", "3-c.pdf")

	docs, err := NewDocumentRepository(cfg).ListByOwner(context.Background(), models.ScopeShipment, sh.ID)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, b.ID, docs[0].ID)
	assert.Equal(t, a.ID, docs[1].ID)

	all, err := NewDocumentRepository(cfg).ListAll(context.Background(), models.ScopeShipment)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDocumentRepository_Updates(t *testing.T) {
	cfg := setupDB(t)
	repo := NewDocumentRepository(cfg)
	ctx := context.Background()

	f := seedFolder(t, cfg, "Certs")
	doc := seedDocument(t, cfg, models.ScopeFolder, f.ID, "iso.pdf", "1-iso.pdf")

	require.NoError(t, repo.UpdateDetails(ctx, models.ScopeFolder, doc.ID, "ISO 9001.pdf", "Certificate"))
	got, err := repo.GetByID(ctx, models.ScopeFolder, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "ISO 9001.pdf", got.OriginalName)
	assert.Equal(t, "Certificate", got.DocType)
	assert.Equal(t, "1-iso.pdf", got.FilePath)

	path, err := repo.GetFilePathForUpdate(ctx, models.ScopeFolder, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "1-iso.pdf", path)

	require.NoError(t, repo.UpdateFile(ctx, models.ScopeFolder, doc.ID, "2-iso-v2.pdf", "iso-v2.pdf"))
	got, err = repo.GetByID(ctx, models.ScopeFolder, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "2-iso-v2.pdf", got.FilePath)
	assert.Equal(t, "iso-v2.pdf", got.OriginalName)
	assert.Equal(t, "Certificate", got.DocType)

	assert.ErrorIs(t, repo.UpdateDetails(ctx, models.ScopeFolder, 999, "x", "y"), domain.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateFile(ctx, models.ScopeFolder, 999, "x", "y"), domain.ErrNotFound)
	_, err = repo.GetFilePathForUpdate(ctx, models.ScopeFolder, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentRepository_Delete(t *testing.T) {
	cfg := setupDB(t)
	repo := NewDocumentRepository(cfg)
	ctx := context.Background()

	f := seedFolder(t, cfg, "Certs")
	doc := seedDocument(t, cfg, models.ScopeFolder, f.ID, "iso.pdf", "1-iso.pdf")

	require.NoError(t, repo.Delete(ctx, models.ScopeFolder, doc.ID))
	assert.ErrorIs(t, repo.Delete(ctx, models.ScopeFolder, doc.ID), domain.ErrNotFound)
}

func TestDocumentRepository_ListFilePaths(t *testing.T) {
	cfg := setupDB(t)
	repo := NewDocumentRepository(cfg)
	ctx := context.Background()

	acme := seedSupplier(t, cfg, "Acme")
	jan := seedShipment(t, cfg, acme.ID, "Jan")
	feb := seedShipment(t, cfg, acme.ID, "Feb")
	other := seedSupplier(t, cfg, "Other")
	mar := seedShipment(t, cfg, other.ID, "Mar")
	certs := seedFolder(t, cfg, "Certs")

	seedDocument(t, cfg, models.ScopeShipment, jan.ID, "a", "k-a")
	seedDocument(t, cfg, models.ScopeShipment, feb.ID, "b", "k-b")
	seedDocument(t, cfg, models.ScopeShipment, mar.ID, "c", "k-c")
	seedDocument(t, cfg, models.ScopeFolder, certs.ID, "d", "k-d")

	paths, err := repo.ListFilePathsBySupplier(ctx, acme.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"k-a", "k-b"}, paths)

	paths, err = repo.ListFilePathsByShipment(ctx, mar.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"k-c"}, paths)

	paths, err = repo.ListFilePathsByFolder(ctx, certs.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"k-d"}, paths)

	paths, err = repo.ListFilePathsByFolder(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, paths)
}
