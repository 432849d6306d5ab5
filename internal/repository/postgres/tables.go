package postgres

import (
	"fmt"

	"importdocs/internal/domain"
	models "importdocs/internal/domain/models/docsystem"
)

// DocumentTable maps a scope to its table and owner column
func DocumentTable(scope models.DocumentScope) (table, ownerColumn string, err error) {
	switch scope {
	case models.ScopeShipment:
		return "documents", "shipment_id", nil
	case models.ScopeFolder:
		return "folder_documents", "folder_id", nil
	default:
		return "", "", &domain.ValidationError{Message: fmt.Sprintf("unknown document scope %q", scope)}
	}
}
