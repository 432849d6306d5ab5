package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"importdocs/internal/blobstore"
	models "importdocs/internal/domain/models/docsystem"
	docsysSvc "importdocs/internal/domain/services/docsystem"
	"importdocs/internal/repository/migrations"
	"importdocs/internal/repository/sqlite"
	serviceDocsys "importdocs/internal/service/docsystem"
)

const testMaxUploadBytes = 64 << 10

// testServer serves the full route table over an in-memory database and a
// temp-dir blob store
type testServer struct {
	mux     *http.ServeMux
	db      *sql.DB
	blobDir string
}

type serverOption func(*serverConfig)

type serverConfig struct {
	converter docsysSvc.PDFConverter
	logger    *slog.Logger
}

// withLogger lets a test read what the handlers log
func withLogger(logger *slog.Logger) serverOption {
	return func(cfg *serverConfig) { cfg.logger = logger }
}

// withConverter replaces the stub PDF converter
func withConverter(c docsysSvc.PDFConverter) serverOption {
	return func(cfg *serverConfig) { cfg.converter = c }
}

// stubConverter returns fixed bytes and records the filename it was given
type stubConverter struct {
	pdf         []byte
	gotFilename string
	gotContent  string
}

func (c *stubConverter) ConvertToPDF(_ context.Context, filename string, content io.Reader) ([]byte, error) {
	c.gotFilename = filename
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	c.gotContent = string(data)
	return c.pdf, nil
}

func (c *stubConverter) Name() string { return "stub" }

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	ctx := context.Background()
	cfg := &serverConfig{
		converter: &stubConverter{pdf: []byte("%PDF-1.7 stub")},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger

	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(ctx, db, migrations.DialectSQLite, logger))

	blobDir := t.TempDir()
	blobs, err := blobstore.NewFSStore(blobDir, logger)
	require.NoError(t, err)

	repoCfg := &sqlite.RepositoryConfig{DB: db, Logger: logger}
	supplierRepo := sqlite.NewSupplierRepository(repoCfg)
	shipmentRepo := sqlite.NewShipmentRepository(repoCfg)
	folderRepo := sqlite.NewFolderRepository(repoCfg)
	docRepo := sqlite.NewDocumentRepository(repoCfg)
	validator := serviceDocsys.NewResourceValidator(shipmentRepo, folderRepo)

	docService := serviceDocsys.NewDocumentService(docRepo, blobs, sqlite.NewTransactionManager(repoCfg), cfg.converter, validator, logger)

	mux := http.NewServeMux()
	RegisterRoutes(mux, &Handlers{
		Health:            NewHealthHandler(db, logger),
		Suppliers:         NewSupplierHandler(serviceDocsys.NewSupplierService(supplierRepo, docRepo, blobs, logger), logger),
		Shipments:         NewShipmentHandler(serviceDocsys.NewShipmentService(shipmentRepo, supplierRepo, docRepo, blobs, logger), logger),
		Folders:           NewFolderHandler(serviceDocsys.NewFolderService(folderRepo, docRepo, blobs, logger), logger),
		ShipmentDocuments: NewDocumentHandler(docService, models.ScopeShipment, testMaxUploadBytes, logger),
		FolderDocuments:   NewDocumentHandler(docService, models.ScopeFolder, testMaxUploadBytes, logger),
		Exports:           NewExportHandler(serviceDocsys.NewExportService(sqlite.NewExportRepository(repoCfg), supplierRepo, blobs, logger), logger),
		Audit:             NewAuditHandler(serviceDocsys.NewAuditService(supplierRepo, shipmentRepo, folderRepo, docRepo, blobs, logger), logger),
	})

	return &testServer{mux: mux, db: db, blobDir: blobDir}
}

// do sends body as JSON; a nil body sends none
func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	return s.doRaw(t, method, path, reader)
}

func (s *testServer) doRaw(t *testing.T, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

// upload posts a multipart form; an empty filename omits the file part
func (s *testServer) upload(t *testing.T, path, filename, content string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

// decodeData unwraps a {"data": ...} envelope
func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	return envelope.Data
}

// decodeProblem reads an RFC 7807 body
func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

// documentJSON mirrors the wire shape of both document kinds
type documentJSON struct {
	ID           int64  `json:"id"`
	ShipmentID   int64  `json:"shipment_id"`
	FolderID     int64  `json:"folder_id"`
	DocType      string `json:"doc_type"`
	OriginalName string `json:"original_name"`
	FilePath     string `json:"file_path"`
}

func (s *testServer) createSupplier(t *testing.T, name string) models.Supplier {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/suppliers", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[models.Supplier](t, rec)
}

func (s *testServer) createShipment(t *testing.T, supplierID int64, name string) models.Shipment {
	t.Helper()
	rec := s.do(t, http.MethodPost, pathf("/api/suppliers/%d/shipments", supplierID), map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[models.Shipment](t, rec)
}

func (s *testServer) createFolder(t *testing.T, name string) models.Folder {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/folders", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[models.Folder](t, rec)
}

func (s *testServer) uploadDocument(t *testing.T, collection, filename, content string) documentJSON {
	t.Helper()
	rec := s.upload(t, collection, filename, content, map[string]string{"doc_type": "Invoice"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[documentJSON](t, rec)
}

func pathf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
