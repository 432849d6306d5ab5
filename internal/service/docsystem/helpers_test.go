package docsystem

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"importdocs/internal/blobstore"
	models "importdocs/internal/domain/models/docsystem"
	"importdocs/internal/domain/repositories"
	docsysRepo "importdocs/internal/domain/repositories/docsystem"
	docsysSvc "importdocs/internal/domain/services/docsystem"
	"importdocs/internal/repository/migrations"
	"importdocs/internal/repository/sqlite"
)

// testEnv wires every service over an in-memory database and a temp-dir blob store
type testEnv struct {
	repoCfg   *sqlite.RepositoryConfig
	blobDir   string
	blobs     repositories.BlobStore
	docRepo   docsysRepo.DocumentRepository
	converter *fakeConverter

	documents docsysSvc.DocumentService
	suppliers docsysSvc.SupplierService
	shipments docsysSvc.ShipmentService
	folders   docsysSvc.FolderService
	exports   docsysSvc.ExportService
	audits    docsysSvc.AuditService
}

type envOption func(*testEnv)

// withBlobStore swaps the blob store, given the real one to wrap
func withBlobStore(wrap func(repositories.BlobStore) repositories.BlobStore) envOption {
	return func(e *testEnv) { e.blobs = wrap(e.blobs) }
}

// withDocRepo swaps the document repository, given the real one to wrap
func withDocRepo(wrap func(docsysRepo.DocumentRepository) docsysRepo.DocumentRepository) envOption {
	return func(e *testEnv) { e.docRepo = wrap(e.docRepo) }
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	ctx := context.Background()
	logger := testLogger()

	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(ctx, db, migrations.DialectSQLite, logger))

	blobDir := t.TempDir()
	blobs, err := blobstore.NewFSStore(blobDir, logger)
	require.NoError(t, err)

	repoCfg := &sqlite.RepositoryConfig{DB: db, Logger: logger}
	env := &testEnv{
		repoCfg:   repoCfg,
		blobDir:   blobDir,
		blobs:     blobs,
		docRepo:   sqlite.NewDocumentRepository(repoCfg),
		converter: &fakeConverter{pdf: []byte("%PDF-1.7 fake")},
	}
	for _, opt := range opts {
		opt(env)
	}

	supplierRepo := sqlite.NewSupplierRepository(repoCfg)
	shipmentRepo := sqlite.NewShipmentRepository(repoCfg)
	folderRepo := sqlite.NewFolderRepository(repoCfg)
	validator := NewResourceValidator(shipmentRepo, folderRepo)

	env.documents = NewDocumentService(env.docRepo, env.blobs, sqlite.NewTransactionManager(repoCfg), env.converter, validator, logger)
	env.suppliers = NewSupplierService(supplierRepo, env.docRepo, env.blobs, logger)
	env.shipments = NewShipmentService(shipmentRepo, supplierRepo, env.docRepo, env.blobs, logger)
	env.folders = NewFolderService(folderRepo, env.docRepo, env.blobs, logger)
	env.exports = NewExportService(sqlite.NewExportRepository(repoCfg), supplierRepo, env.blobs, logger)
	env.audits = NewAuditService(supplierRepo, shipmentRepo, folderRepo, env.docRepo, env.blobs, logger)

	return env
}

func (e *testEnv) createSupplier(t *testing.T, name string) *models.Supplier {
	t.Helper()
	s, err := e.suppliers.CreateSupplier(context.Background(), &docsysSvc.CreateContainerRequest{Name: name})
	require.NoError(t, err)
	return s
}

func (e *testEnv) createShipment(t *testing.T, supplierID int64, name string) *models.Shipment {
	t.Helper()
	sh, err := e.shipments.CreateShipment(context.Background(), supplierID, &docsysSvc.CreateContainerRequest{Name: name})
	require.NoError(t, err)
	return sh
}

func (e *testEnv) createFolder(t *testing.T, name string) *models.Folder {
	t.Helper()
	f, err := e.folders.CreateFolder(context.Background(), &docsysSvc.CreateContainerRequest{Name: name})
	require.NoError(t, err)
	return f
}

func (e *testEnv) upload(t *testing.T, scope models.DocumentScope, ownerID int64, filename, content string) *models.Document {
	t.Helper()
	doc, err := e.documents.CreateDocument(context.Background(), &docsysSvc.CreateDocumentRequest{
		Scope:            scope,
		OwnerID:          ownerID,
		DocType:          "Invoice",
		OriginalFilename: filename,
		Content:          strings.NewReader(content),
	})
	require.NoError(t, err)
	return doc
}

// blobFiles lists the files physically present in the blob directory
func (e *testEnv) blobFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.blobDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func (e *testEnv) readBlob(t *testing.T, key string) string {
	t.Helper()
	data, err := os.ReadFile(e.blobDir + "/" + key)
	require.NoError(t, err)
	return string(data)
}

func (e *testEnv) countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, e.repoCfg.DB.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

// exportZip runs the full prepare + write sequence and returns the archive contents by path
func (e *testEnv) exportZip(t *testing.T, scope models.ExportScope) (*models.ExportPlan, map[string]string) {
	t.Helper()
	ctx := context.Background()

	plan, err := e.exports.PrepareExport(ctx, scope)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = e.exports.WriteArchive(ctx, plan, &buf)
	require.NoError(t, err)

	return plan, readZip(t, buf.Bytes())
}

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)
		files[f.Name] = string(content)
	}
	return files
}

// fakeConverter records what it was asked to convert
type fakeConverter struct {
	pdf         []byte
	err         error
	gotFilename string
	gotContent  string
}

func (c *fakeConverter) ConvertToPDF(ctx context.Context, filename string, content io.Reader) ([]byte, error) {
	c.gotFilename = filename
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	c.gotContent = string(data)
	if c.err != nil {
		return nil, c.err
	}
	return c.pdf, nil
}

func (c *fakeConverter) Name() string { return "fake" }

// flakyBlobStore fails selected operations of an otherwise real store
type flakyBlobStore struct {
	repositories.BlobStore
	putErr    error
	removeErr error
	removed   []string
}

func (f *flakyBlobStore) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	return f.BlobStore.Put(ctx, name, r)
}

func (f *flakyBlobStore) Remove(ctx context.Context, key string) error {
	f.removed = append(f.removed, key)
	if f.removeErr != nil {
		return f.removeErr
	}
	return f.BlobStore.Remove(ctx, key)
}

// flakyDocRepo fails selected writes of an otherwise real repository
type flakyDocRepo struct {
	docsysRepo.DocumentRepository
	createErr     error
	updateFileErr error
}

func (f *flakyDocRepo) Create(ctx context.Context, doc *models.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.DocumentRepository.Create(ctx, doc)
}

func (f *flakyDocRepo) UpdateFile(ctx context.Context, scope models.DocumentScope, id int64, filePath, originalName string) error {
	if f.updateFileErr != nil {
		return f.updateFileErr
	}
	return f.DocumentRepository.UpdateFile(ctx, scope, id, filePath, originalName)
}

// failingWriter accepts limit bytes, then fails
type failingWriter struct {
	limit int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		n := w.limit
		w.limit = 0
		return n, errors.New("client went away")
	}
	w.limit -= len(p)
	return len(p), nil
}
