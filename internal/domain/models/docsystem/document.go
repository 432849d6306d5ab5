package docsystem

import (
	"encoding/json"
	"time"
)

// DocumentScope selects which owner kind a document hangs off.
// Shipment documents and folder documents share one shape and one lifecycle.
type DocumentScope string

const (
	ScopeShipment DocumentScope = "shipment"
	ScopeFolder   DocumentScope = "folder"
)

// Valid reports whether s is a known scope
func (s DocumentScope) Valid() bool {
	return s == ScopeShipment || s == ScopeFolder
}

// OwnerKey is the column and JSON key naming the owning container
func (s DocumentScope) OwnerKey() string {
	if s == ScopeFolder {
		return "folder_id"
	}
	return "shipment_id"
}

// OwnerKind is the human-readable owner name used in error messages
func (s DocumentScope) OwnerKind() string {
	if s == ScopeFolder {
		return "folder"
	}
	return "shipment"
}

type Document struct {
	ID           int64         `json:"id" db:"id"`
	Scope        DocumentScope `json:"-"`
	OwnerID      int64         `json:"-"` // shipment_id or folder_id, per Scope
	DocType      string        `json:"doc_type" db:"doc_type"`
	OriginalName string        `json:"original_name" db:"original_name"` // Display name, may differ from the uploaded filename
	FilePath     string        `json:"file_path" db:"file_path"`         // Blob key, unique per table
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}

// MarshalJSON emits the owner under shipment_id or folder_id so both
// document kinds keep the wire shape of their own table.
func (d Document) MarshalJSON() ([]byte, error) {
	m := map[string]interface{}{
		"id":            d.ID,
		"doc_type":      d.DocType,
		"original_name": d.OriginalName,
		"file_path":     d.FilePath,
		"created_at":    d.CreatedAt,
	}
	m[d.Scope.OwnerKey()] = d.OwnerID
	return json.Marshal(m)
}
