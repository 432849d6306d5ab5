package docsystem

import (
	"context"

	"importdocs/internal/domain/models/docsystem"
)

// AuditService builds the inventory tree and checks it against the blob store
type AuditService interface {
	// Audit reports the full hierarchy, missing blobs and orphan blobs.
	// It never modifies anything.
	Audit(ctx context.Context) (*docsystem.AuditReport, error)
}
