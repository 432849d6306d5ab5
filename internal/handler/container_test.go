package handler

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "importdocs/internal/domain/models/docsystem"
)

func TestSupplierRoutes(t *testing.T) {
	srv := newTestServer(t)

	created := srv.createSupplier(t, "  Acme  ")
	assert.Equal(t, "Acme", created.Name)
	assert.Nil(t, created.Details)

	rec := srv.do(t, http.MethodGet, pathf("/api/suppliers/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decodeData[models.Supplier](t, rec))

	srv.createSupplier(t, "Beta")
	rec = srv.do(t, http.MethodGet, "/api/suppliers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeData[[]models.Supplier](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "Acme", list[0].Name)
	assert.Equal(t, "Beta", list[1].Name)
}

func TestCreateSupplierConflictReturnsExisting(t *testing.T) {
	srv := newTestServer(t)
	existing := srv.createSupplier(t, "Acme")

	rec := srv.do(t, http.MethodPost, "/api/suppliers", map[string]string{"name": "Acme"})

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, existing.ID, decodeData[models.Supplier](t, rec).ID)
}

func TestSupplierRequestErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{name: "blank name", method: http.MethodPost, path: "/api/suppliers", body: map[string]string{"name": "   "}, status: http.StatusBadRequest},
		{name: "name too long", method: http.MethodPost, path: "/api/suppliers", body: map[string]string{"name": strings.Repeat("x", 256)}, status: http.StatusBadRequest},
		{name: "non-numeric id", method: http.MethodGet, path: "/api/suppliers/abc", status: http.StatusBadRequest},
		{name: "zero id", method: http.MethodDelete, path: "/api/suppliers/0", status: http.StatusBadRequest},
		{name: "unknown supplier", method: http.MethodGet, path: "/api/suppliers/999", status: http.StatusNotFound},
		{name: "delete unknown supplier", method: http.MethodDelete, path: "/api/suppliers/999", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			rec := srv.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			problem := decodeProblem(t, rec)
			assert.EqualValues(t, tt.status, problem["status"])
		})
	}
}

func TestCreateSupplierInvalidJSON(t *testing.T) {
	srv := newTestServer(t)
	req := strings.NewReader(`{"name":`)
	rec := srv.doRaw(t, http.MethodPost, "/api/suppliers", req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeProblem(t, rec)["detail"], "invalid JSON")
}

func TestShipmentRoutes(t *testing.T) {
	srv := newTestServer(t)
	supplier := srv.createSupplier(t, "Acme")

	first := srv.createShipment(t, supplier.ID, "SH-001")
	second := srv.createShipment(t, supplier.ID, "SH-002")
	require.NotNil(t, first.SupplierName)
	assert.Equal(t, "Acme", *first.SupplierName)

	rec := srv.do(t, http.MethodGet, pathf("/api/suppliers/%d/shipments", supplier.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed models.SupplierShipments
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Equal(t, supplier.ID, listed.Supplier.ID)
	require.Len(t, listed.Shipments, 2)
	assert.Equal(t, second.ID, listed.Shipments[0].ID, "newest first")

	rec = srv.do(t, http.MethodGet, pathf("/api/shipments/%d", first.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SH-001", decodeData[models.Shipment](t, rec).Name)

	rec = srv.do(t, http.MethodDelete, pathf("/api/shipments/%d", first.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Shipment deleted"}`, rec.Body.String())

	rec = srv.do(t, http.MethodGet, pathf("/api/shipments/%d", first.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShipmentRoutesUnknownSupplier(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/suppliers/42/shipments", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/suppliers/42/shipments", map[string]string{"name": "SH-001"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFolderRoutes(t *testing.T) {
	srv := newTestServer(t)
	details := "Customs paperwork"

	rec := srv.do(t, http.MethodPost, "/api/folders", map[string]interface{}{"name": "Customs", "details": details})
	require.Equal(t, http.StatusCreated, rec.Code)
	folder := decodeData[models.Folder](t, rec)
	require.NotNil(t, folder.Details)
	assert.Equal(t, details, *folder.Details)

	rec = srv.do(t, http.MethodPost, "/api/folders", map[string]string{"name": "Customs"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, folder.ID, decodeData[models.Folder](t, rec).ID)

	rec = srv.do(t, http.MethodGet, "/api/folders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]models.Folder](t, rec), 1)

	rec = srv.do(t, http.MethodGet, pathf("/api/folders/%d", folder.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodDelete, pathf("/api/folders/%d", folder.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Folder deleted"}`, rec.Body.String())

	rec = srv.do(t, http.MethodGet, pathf("/api/folders/%d", folder.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteSupplierCascades(t *testing.T) {
	srv := newTestServer(t)
	supplier := srv.createSupplier(t, "Acme")
	shipment := srv.createShipment(t, supplier.ID, "SH-001")
	doc := srv.uploadDocument(t, pathf("/api/shipments/%d/documents", shipment.ID), "invoice.pdf", "%PDF")

	rec := srv.do(t, http.MethodDelete, pathf("/api/suppliers/%d", supplier.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Supplier deleted"}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, pathf("/api/shipments/%d", shipment.ID), nil).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, pathf("/api/documents/%d", doc.ID), nil).Code)

	entries, err := os.ReadDir(srv.blobDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
