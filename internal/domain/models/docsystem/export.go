package docsystem

import "time"

// Archive root and filename used for the whole-system export
const (
	AllExportRoot     = "All Import Docs"
	AllExportFilename = AllExportRoot + ".zip"
)

// Archive subtrees of the whole-system export
const (
	SubtreeSuppliers = "Suppliers"
	SubtreeFolders   = "Folders"
)

// ExportScope selects what an archive covers.
// A nil SupplierID means every document of both kinds.
type ExportScope struct {
	SupplierID *int64
}

// All reports whether the scope covers the whole system
func (s ExportScope) All() bool {
	return s.SupplierID == nil
}

// ExportEntry is one flat row feeding the archive builder.
// Owners holds the container names from the top of the subtree down,
// e.g. [supplier, shipment] or [folder].
type ExportEntry struct {
	Subtree      string
	Owners       []string
	OriginalName string
	FilePath     string
	CreatedAt    time.Time
}

// ExportPlan is everything resolved before the first archive byte is written
type ExportPlan struct {
	Scope    ExportScope
	Filename string
	Root     string // Top-level directory inside the archive, empty for supplier exports
	Entries  []ExportEntry
}

// ExportResult summarizes a finished archive stream
type ExportResult struct {
	Written int      `json:"written"`
	Skipped []string `json:"skipped"` // Blob keys referenced by rows but missing from the store
}
