package postgres

import (
	"testing"

	"importdocs/internal/domain"
	models "importdocs/internal/domain/models/docsystem"

	"github.com/stretchr/testify/assert"
)

func TestDocumentTable(t *testing.T) {
	tests := []struct {
		scope     models.DocumentScope
		wantTable string
		wantOwner string
		wantErr   bool
	}{
		{models.ScopeShipment, "documents", "shipment_id", false},
		{models.ScopeFolder, "folder_documents", "folder_id", false},
		{models.DocumentScope(""), "", "", true},
		{models.DocumentScope("documents; DROP TABLE suppliers"), "", "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			table, owner, err := DocumentTable(tt.scope)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantTable, table)
			assert.Equal(t, tt.wantOwner, owner)
		})
	}
}
