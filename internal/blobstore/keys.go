// Package blobstore holds uploaded file bytes for the document lifecycle.
// Blobs live under flat, generated keys; metadata rows point at them.
package blobstore

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"importdocs/internal/config"
)

// putAttempts bounds key regeneration when a fresh key is somehow taken
const putAttempts = 3

// NewKey returns a fresh blob key: <unix millis>-<token>-<sanitized filename>.
// The token makes keys unique even for identical names in the same millisecond.
func NewKey(originalFilename string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), token, SanitizeFilename(originalFilename))
}

// SanitizeFilename reduces a client-supplied filename to a safe single path
// segment of [A-Za-z0-9._-], keeping the extension when it has to shorten.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	clean := strings.Trim(b.String(), ".")
	if clean == "" || strings.Trim(clean, "_") == "" {
		return "file"
	}

	if len(clean) > config.MaxBlobNameLength {
		ext := filepath.Ext(clean)
		if len(ext) > 16 {
			ext = ""
		}
		clean = clean[:config.MaxBlobNameLength-len(ext)] + ext
	}

	return clean
}

// validKey reports whether key is a single flat segment the store could have produced
func validKey(key string) bool {
	return key != "" && !strings.HasPrefix(key, ".") && !strings.ContainsAny(key, `/\`)
}
