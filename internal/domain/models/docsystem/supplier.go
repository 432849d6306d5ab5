package docsystem

// Supplier is the root of the shipment hierarchy
type Supplier struct {
	ID      int64   `json:"id" db:"id"`
	Name    string  `json:"name" db:"name"` // Unique across suppliers
	Details *string `json:"details" db:"details"`
}
