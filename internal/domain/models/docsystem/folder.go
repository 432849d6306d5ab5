package docsystem

// Folder is a standalone container of folder documents
type Folder struct {
	ID      int64   `json:"id" db:"id"`
	Name    string  `json:"name" db:"name"` // Unique across folders
	Details *string `json:"details" db:"details"`
}
