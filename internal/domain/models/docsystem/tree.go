package docsystem

import "time"

// AuditReport is the inventory tree plus blob consistency findings.
// Nothing in it has been repaired; it only reports.
type AuditReport struct {
	Suppliers      []*SupplierTreeNode `json:"suppliers"`
	Folders        []*FolderTreeNode   `json:"folders"`
	DocumentCount  int                 `json:"document_count"`
	MissingBlobs   []string            `json:"missing_blobs"`   // Referenced by a row, absent from the store
	OrphanBlobs    []string            `json:"orphan_blobs"`    // Present in the store, referenced by no row
	UnownedRecords int                 `json:"unowned_records"` // Shipments without a supplier
}

// SupplierTreeNode represents a supplier with its shipments
type SupplierTreeNode struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	Shipments []*ShipmentTreeNode `json:"shipments"`
}

// ShipmentTreeNode represents a shipment with its documents
type ShipmentTreeNode struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Documents []DocumentTreeNode `json:"documents"`
}

// FolderTreeNode represents a folder with its documents
type FolderTreeNode struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Documents []DocumentTreeNode `json:"documents"`
}

// DocumentTreeNode represents a document in the tree (metadata only, no content)
type DocumentTreeNode struct {
	ID           int64     `json:"id"`
	DocType      string    `json:"doc_type"`
	OriginalName string    `json:"original_name"`
	FilePath     string    `json:"file_path"`
	BlobMissing  bool      `json:"blob_missing"`
	CreatedAt    time.Time `json:"created_at"`
}
