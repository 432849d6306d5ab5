package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"importdocs/internal/domain"
	models "importdocs/internal/domain/models/docsystem"
	docsysRepo "importdocs/internal/domain/repositories/docsystem"
	"importdocs/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresShipmentRepository implements the ShipmentRepository interface
type PostgresShipmentRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewShipmentRepository creates a new shipment repository
func NewShipmentRepository(config *postgres.RepositoryConfig) docsysRepo.ShipmentRepository {
	return &PostgresShipmentRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

const shipmentSelect = `
	SELECT sh.id, sh.name, sh.supplier_id, s.name, sh.details, sh.created_at
	FROM shipments sh
	LEFT JOIN suppliers s ON sh.supplier_id = s.id
`

// Create creates a new shipment
func (r *PostgresShipmentRepository) Create(ctx context.Context, shipment *models.Shipment) error {
	if shipment.CreatedAt.IsZero() {
		shipment.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO shipments (name, supplier_id, details, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		shipment.Name,
		shipment.SupplierID,
		shipment.Details,
		shipment.CreatedAt,
	).Scan(&shipment.ID)

	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("supplier for shipment '%s': %w", shipment.Name, domain.ErrNotFound)
		}
		return fmt.Errorf("create shipment: %w", err)
	}

	return nil
}

// GetByID retrieves a shipment with its supplier name
func (r *PostgresShipmentRepository) GetByID(ctx context.Context, id int64) (*models.Shipment, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	shipment, err := scanShipment(executor.QueryRow(ctx, shipmentSelect+` WHERE sh.id = $1`, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("shipment %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}

	return shipment, nil
}

// ListBySupplier lists a supplier's shipments, newest first
func (r *PostgresShipmentRepository) ListBySupplier(ctx context.Context, supplierID int64) ([]models.Shipment, error) {
	return r.list(ctx, shipmentSelect+` WHERE sh.supplier_id = $1 ORDER BY sh.id DESC`, supplierID)
}

// ListAll lists every shipment ordered by supplier then ID
func (r *PostgresShipmentRepository) ListAll(ctx context.Context) ([]models.Shipment, error) {
	return r.list(ctx, shipmentSelect+` ORDER BY sh.supplier_id, sh.id`)
}

func (r *PostgresShipmentRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Shipment, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
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
func (r *PostgresShipmentRepository) Delete(ctx context.Context, id int64) error {
	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("shipment %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanShipment(row pgx.Row) (*models.Shipment, error) {
	var shipment models.Shipment
	err := row.Scan(
		&shipment.ID,
		&shipment.Name,
		&shipment.SupplierID,
		&shipment.SupplierName,
		&shipment.Details,
		&shipment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}
