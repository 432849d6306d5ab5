package converter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"importdocs/internal/domain"
)

// fakeConvertAPI serves the convert and file download endpoints
type fakeConvertAPI struct {
	server       *httptest.Server
	calls        atomic.Int32
	convertCode  int
	convertBody  string
	downloadCode int

	mu         sync.Mutex
	gotExt     string
	gotName    string
	gotContent string
}

func newFakeConvertAPI(t *testing.T) *fakeConvertAPI {
	f := &fakeConvertAPI{convertCode: http.StatusOK, downloadCode: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /convert/{ext}/to/pdf", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		assert.Equal(t, "s3cret", r.URL.Query().Get("Secret"))
		assert.Equal(t, "true", r.URL.Query().Get("StoreFile"))
		file, header, err := r.FormFile("File")
		if assert.NoError(t, err) {
			data, _ := io.ReadAll(file)
			f.mu.Lock()
			f.gotExt = r.PathValue("ext")
			f.gotName = header.Filename
			f.gotContent = string(data)
			f.mu.Unlock()
		}

		if f.convertCode != http.StatusOK {
			w.WriteHeader(f.convertCode)
			_, _ = w.Write([]byte(f.convertBody))
			return
		}
		if f.convertBody != "" {
			_, _ = w.Write([]byte(f.convertBody))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"ConversionCost": 1,
			"Files": []map[string]interface{}{
				{"FileName": "out.pdf", "FileExt": "pdf", "FileSize": 8, "Url": f.server.URL + "/d/abc/out.pdf"},
			},
		})
	})
	mux.HandleFunc("GET /d/abc/out.pdf", func(w http.ResponseWriter, r *http.Request) {
		if f.downloadCode != http.StatusOK {
			w.WriteHeader(f.downloadCode)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7"))
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeConvertAPI) client(secret string) *ConvertAPIClient {
	return NewConvertAPIClientWithConfig(secret, f.server.URL+"/", 5*time.Second)
}

func TestConvertToPDF(t *testing.T) {
	api := newFakeConvertAPI(t)

	pdf, err := api.client("s3cret").ConvertToPDF(context.Background(), "1700000000000-abcd1234-contract.DOCX", strings.NewReader("docx-bytes"))
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-1.7"), pdf)
	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, "docx", api.gotExt)
	assert.Equal(t, "1700000000000-abcd1234-contract.DOCX", api.gotName)
	assert.Equal(t, "docx-bytes", api.gotContent)
}

func TestConvertToPDF_MissingSecret(t *testing.T) {
	api := newFakeConvertAPI(t)

	_, err := api.client("").ConvertToPDF(context.Background(), "a.docx", strings.NewReader("x"))

	assert.ErrorIs(t, err, domain.ErrConfigurationMissing)
	assert.Zero(t, api.calls.Load())
}

func TestConvertToPDF_Failures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*fakeConvertAPI)
		file    string
		wantMsg string
	}{
		{
			name: "upstream rejects",
			setup: func(f *fakeConvertAPI) {
				f.convertCode = http.StatusUnauthorized
				f.convertBody = `{"Code":4013,"Message":"Secret is invalid"}`
			},
			file:    "a.docx",
			wantMsg: "Secret is invalid",
		},
		{
			name: "upstream error without json",
			setup: func(f *fakeConvertAPI) {
				f.convertCode = http.StatusBadGateway
				f.convertBody = "bad gateway"
			},
			file:    "a.docx",
			wantMsg: "status 502",
		},
		{
			name:    "no files in reply",
			setup:   func(f *fakeConvertAPI) { f.convertBody = `{"ConversionCost":1,"Files":[]}` },
			file:    "a.docx",
			wantMsg: "no file",
		},
		{
			name:    "download fails",
			setup:   func(f *fakeConvertAPI) { f.downloadCode = http.StatusNotFound },
			file:    "a.docx",
			wantMsg: "status 404",
		},
		{
			name:    "no extension",
			setup:   func(f *fakeConvertAPI) {},
			file:    "README",
			wantMsg: "without an extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeConvertAPI(t)
			tt.setup(api)

			_, err := api.client("s3cret").ConvertToPDF(context.Background(), tt.file, strings.NewReader("x"))

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConversionFailed)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestConvertToPDF_TransportErrorHidesSecret(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := NewConvertAPIClientWithConfig("s3cret", baseURL, time.Second)
	_, err := client.ConvertToPDF(context.Background(), "a.docx", strings.NewReader("x"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConversionFailed)
	assert.NotContains(t, err.Error(), "s3cret")
}

type erroringReader struct{}

func (erroringReader) Read([]byte) (int, error) { return 0, errors.New("blob read failed") }

func TestConvertToPDF_SourceReadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(server.Close)

	client := NewConvertAPIClientWithConfig("s3cret", server.URL, 5*time.Second)
	_, err := client.ConvertToPDF(context.Background(), "a.docx", erroringReader{})

	assert.ErrorIs(t, err, domain.ErrConversionFailed)
}

func TestNewConvertAPIClient_Defaults(t *testing.T) {
	c := NewConvertAPIClient("key")

	assert.Equal(t, DefaultConvertAPIBaseURL, c.baseURL)
	assert.Equal(t, DefaultConvertAPITimeout, c.httpClient.Timeout)
	assert.Equal(t, "convertapi", c.Name())
}
