package httputil

import (
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
)

// SetContentDisposition sets an attachment or inline disposition. Non-ASCII
// filenames are encoded per RFC 2231 so the header stays valid.
func SetContentDisposition(w http.ResponseWriter, disposition, filename string) {
	value := mime.FormatMediaType(disposition, map[string]string{"filename": filename})
	if value == "" {
		// FormatMediaType rejects names it cannot encode; fall back to no name
		value = disposition
	}
	w.Header().Set("Content-Disposition", value)
}

// ContentTypeFor guesses a content type from a filename's extension
func ContentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// SetContentLength sets Content-Length for a body of known size
func SetContentLength(w http.ResponseWriter, n int) {
	w.Header().Set("Content-Length", strconv.Itoa(n))
}
