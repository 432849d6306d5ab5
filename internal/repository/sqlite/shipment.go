package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"importdocs/internal/domain"
	models "importdocs/internal/domain/models/docsystem"
	docsysRepo "importdocs/internal/domain/repositories/docsystem"
)

// SQLiteShipmentRepository implements the ShipmentRepository interface
type SQLiteShipmentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewShipmentRepository creates a new shipment repository
func NewShipmentRepository(config *RepositoryConfig) docsysRepo.ShipmentRepository {
	return &SQLiteShipmentRepository{
		db:     config.DB,
		logger: config.Logger,
	}
}

const shipmentColumns = `sh.id, sh.name, sh.supplier_id, s.name, sh.details, sh.created_at`

// Create creates a new shipment
func (r *SQLiteShipmentRepository) Create(ctx context.Context, shipment *models.Shipment) error {
	if shipment.CreatedAt.IsZero() {
		shipment.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO shipments (name, supplier_id, details, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, query,
		shipment.Name,
		shipment.SupplierID,
		shipment.Details,
		formatTime(shipment.CreatedAt),
	).Scan(&shipment.ID)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("supplier %v: %w", derefID(shipment.SupplierID), domain.ErrNotFound)
		}
		return fmt.Errorf("create shipment: %w", err)
	}

	return nil
}

// GetByID retrieves a shipment with its supplier name
func (r *SQLiteShipmentRepository) GetByID(ctx context.Context, id int64) (*models.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments sh
		LEFT JOIN suppliers s ON sh.supplier_id = s.id
		WHERE sh.id = ?
	`

	executor := GetExecutor(ctx, r.db)
	shipment, err := scanShipment(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNoRowsError(err) {
			return nil, fmt.Errorf("shipment %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}

	return shipment, nil
}

// ListBySupplier lists a supplier's shipments, newest first
func (r *SQLiteShipmentRepository) ListBySupplier(ctx context.Context, supplierID int64) ([]models.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments sh
		LEFT JOIN suppliers s ON sh.supplier_id = s.id
		WHERE sh.supplier_id = ?
		ORDER BY sh.id DESC
	`
	return r.list(ctx, query, supplierID)
}

// ListAll lists every shipment ordered by supplier then ID
func (r *SQLiteShipmentRepository) ListAll(ctx context.Context) ([]models.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments sh
		LEFT JOIN suppliers s ON sh.supplier_id = s.id
		ORDER BY sh.supplier_id, sh.id
	`
	return r.list(ctx, query)
}

func (r *SQLiteShipmentRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Shipment, error) {
	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	shipments := []models.Shipment{}
	for rows.Next() {
		shipment, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		shipments = append(shipments, *shipment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shipments: %w", err)
	}

	return shipments, nil
}

// Delete deletes a shipment
func (r *SQLiteShipmentRepository) Delete(ctx context.Context, id int64) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM shipments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}

	return requireAffected(result, fmt.Sprintf("shipment %d", id))
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShipment(row rowScanner) (*models.Shipment, error) {
	var shipment models.Shipment
	err := row.Scan(
		&shipment.ID,
		&shipment.Name,
		&shipment.SupplierID,
		&shipment.SupplierName,
		&shipment.Details,
		scanTime(&shipment.CreatedAt),
	)
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

func derefID(id *int64) interface{} {
	if id == nil {
		return "<nil>"
	}
	return *id
}
