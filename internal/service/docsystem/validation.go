package docsystem

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"importdocs/internal/config"
	"importdocs/internal/domain"
	models "importdocs/internal/domain/models/docsystem"
	docsysRepo "importdocs/internal/domain/repositories/docsystem"
	docsysSvc "importdocs/internal/domain/services/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ResourceValidator checks that the shipment or folder owning a document
// exists before the document is touched. Supplier checks live in the
// shipment service, which needs the supplier record anyway.
type ResourceValidator struct {
	shipmentRepo docsysRepo.ShipmentRepository
	folderRepo   docsysRepo.FolderRepository
}

// NewResourceValidator creates a new resource validator
func NewResourceValidator(
	shipmentRepo docsysRepo.ShipmentRepository,
	folderRepo docsysRepo.FolderRepository,
) *ResourceValidator {
	return &ResourceValidator{
		shipmentRepo: shipmentRepo,
		folderRepo:   folderRepo,
	}
}

// ValidateOwner ensures the shipment or folder a document would hang off exists
func (v *ResourceValidator) ValidateOwner(ctx context.Context, scope models.DocumentScope, ownerID int64) error {
	var err error
	switch scope {
	case models.ScopeShipment:
		_, err = v.shipmentRepo.GetByID(ctx, ownerID)
	case models.ScopeFolder:
		_, err = v.folderRepo.GetByID(ctx, ownerID)
	default:
		return &domain.ValidationError{Message: fmt.Sprintf("unknown document scope %q", scope)}
	}
	if err != nil {
		return fmt.Errorf("invalid %s: %w", scope.OwnerKind(), err)
	}
	return nil
}

// validateContainerRequest validates a supplier, folder or shipment creation request
func validateContainerRequest(req *docsysSvc.CreateContainerRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.By(func(value interface{}) error {
				if strings.TrimSpace(value.(string)) == "" {
					return errors.New("cannot be blank")
				}
				return nil
			}),
			validation.Length(1, config.MaxContainerNameLength),
		),
		validation.Field(&req.Details, validation.Length(0, config.MaxDetailsLength)),
	)
}

// normalizeContainerRequest trims the name and drops blank details
func normalizeContainerRequest(req *docsysSvc.CreateContainerRequest) (string, *string) {
	name := strings.TrimSpace(req.Name)
	if req.Details == nil {
		return name, nil
	}
	details := strings.TrimSpace(*req.Details)
	if details == "" {
		return name, nil
	}
	return name, &details
}
