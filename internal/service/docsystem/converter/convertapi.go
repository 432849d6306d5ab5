package converter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"importdocs/internal/domain"
	docsysSvc "importdocs/internal/domain/services/docsystem"
)

const (
	// DefaultConvertAPIBaseURL is the default ConvertAPI endpoint
	DefaultConvertAPIBaseURL = "https://v2.convertapi.com"
	// DefaultConvertAPITimeout bounds one conversion, upload and download included
	DefaultConvertAPITimeout = 2 * time.Minute

	// maxErrorBody caps how much of an upstream error body ends up in an error message
	maxErrorBody = 512
)

// ConvertAPIClient implements PDFConverter against ConvertAPI's
// /convert/{ext}/to/pdf endpoint. The source is uploaded as multipart field
// "File"; the result is stored upstream and downloaded from the returned URL.
type ConvertAPIClient struct {
	secret     string
	baseURL    string
	httpClient *http.Client
}

// NewConvertAPIClient creates a new ConvertAPI client.
// An empty secret is allowed; conversions then fail with ConfigurationMissing.
func NewConvertAPIClient(secret string) *ConvertAPIClient {
	return NewConvertAPIClientWithConfig(secret, DefaultConvertAPIBaseURL, DefaultConvertAPITimeout)
}

// NewConvertAPIClientWithConfig creates a ConvertAPI client with custom configuration.
func NewConvertAPIClientWithConfig(secret string, baseURL string, timeout time.Duration) *ConvertAPIClient {
	return &ConvertAPIClient{
		secret:  secret,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

var _ docsysSvc.PDFConverter = (*ConvertAPIClient)(nil)

// Name returns the converter name for logging.
func (c *ConvertAPIClient) Name() string {
	return "convertapi"
}

// ConvertToPDF uploads content and returns the converted PDF bytes.
// No retries; the caller decides whether to try again.
func (c *ConvertAPIClient) ConvertToPDF(ctx context.Context, filename string, content io.Reader) ([]byte, error) {
	if c.secret == "" {
		return nil, &domain.ConfigurationMissingError{Setting: "CONVERTAPI_SECRET"}
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return nil, &domain.ConversionFailedError{Message: fmt.Sprintf("cannot tell the format of %q without an extension", filename)}
	}

	fileURL, err := c.convert(ctx, ext, filepath.Base(filename), content)
	if err != nil {
		return nil, err
	}

	return c.download(ctx, fileURL)
}

// convert posts the file and returns the URL of the stored result
func (c *ConvertAPIClient) convert(ctx context.Context, ext, filename string, content io.Reader) (string, error) {
	query := url.Values{}
	query.Set("Secret", c.secret)
	query.Set("StoreFile", "true")
	endpoint := fmt.Sprintf("%s/convert/%s/to/pdf?%s", c.baseURL, url.PathEscape(ext), query.Encode())

	// Stream the multipart body so large uploads are never held in memory
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	done := make(chan struct{})
	go func() {
		defer close(done)
		part, err := mw.CreateFormFile("File", filename)
		if err == nil {
			_, err = io.Copy(part, content)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()
	defer func() {
		_ = pr.Close()
		<-done
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		return "", &domain.ConversionFailedError{Message: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.ConversionFailedError{Message: "conversion request failed", Err: redactURL(err)}
	}
	defer func() { _ = resp.Body.Close() }() // Error ignored: response consumed

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.ConversionFailedError{Message: "failed to read conversion response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &domain.ConversionFailedError{Message: upstreamError(resp.StatusCode, body)}
	}

	var result convertResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &domain.ConversionFailedError{Message: "failed to parse conversion response", Err: err}
	}
	if len(result.Files) == 0 || result.Files[0].URL == "" {
		return "", &domain.ConversionFailedError{Message: "conversion response contained no file"}
	}

	return result.Files[0].URL, nil
}

// download fetches the stored PDF
func (c *ConvertAPIClient) download(ctx context.Context, fileURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, &domain.ConversionFailedError{Message: "invalid result URL", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.ConversionFailedError{Message: "result download failed", Err: redactURL(err)}
	}
	defer func() { _ = resp.Body.Close() }() // Error ignored: response consumed

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.ConversionFailedError{Message: upstreamError(resp.StatusCode, body)}
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ConversionFailedError{Message: "failed to read converted file", Err: err}
	}

	return pdf, nil
}

// convertResponse represents the response from ConvertAPI
type convertResponse struct {
	ConversionCost int           `json:"ConversionCost"`
	Files          []convertFile `json:"Files"`
}

// convertFile represents one stored result file
type convertFile struct {
	FileName string `json:"FileName"`
	FileExt  string `json:"FileExt"`
	FileSize int64  `json:"FileSize"`
	URL      string `json:"Url"`
}

// convertError represents ConvertAPI's error body
type convertError struct {
	Code    int    `json:"Code"`
	Message string `json:"Message"`
}

// upstreamError describes a non-200 reply, preferring ConvertAPI's own message
func upstreamError(status int, body []byte) string {
	var apiErr convertError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Sprintf("API error (status %d, code %d): %s", status, apiErr.Code, apiErr.Message)
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return fmt.Sprintf("API error (status %d): %s", status, strings.TrimSpace(string(body)))
}

// redactURL drops the request URL from transport errors; it carries the secret
func redactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
