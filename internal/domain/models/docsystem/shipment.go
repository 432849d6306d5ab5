package docsystem

import (
	"time"
)

type Shipment struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	SupplierID   *int64    `json:"supplier_id" db:"supplier_id"`
	SupplierName *string   `json:"supplier_name,omitempty"` // Joined from suppliers on reads, not stored
	Details      *string   `json:"details" db:"details"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// SupplierShipments is a supplier together with its shipments, newest first
type SupplierShipments struct {
	Supplier  *Supplier  `json:"supplier"`
	Shipments []Shipment `json:"shipments"`
}
