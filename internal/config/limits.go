package config

const (
	// MaxContainerNameLength is the maximum length for supplier, shipment and folder names.
	// Container names become archive directory names, so they stay short.
	MaxContainerNameLength = 255

	// MaxDocumentNameLength is the maximum length for a document's display name
	// and for the filename of an upload.
	MaxDocumentNameLength = 255

	// MaxDocTypeLength is the maximum length for a document type label.
	MaxDocTypeLength = 255

	// MaxDetailsLength is the maximum length for free-form details text.
	MaxDetailsLength = 4000

	// MaxBlobNameLength caps the sanitized filename part of a blob key so the
	// full key (timestamp, token and name) stays well under common filesystem limits.
	MaxBlobNameLength = 180
)
