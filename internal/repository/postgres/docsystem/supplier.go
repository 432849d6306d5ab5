package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"importdocs/internal/domain"
	models "importdocs/internal/domain/models/docsystem"
	docsysRepo "importdocs/internal/domain/repositories/docsystem"
	"importdocs/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSupplierRepository implements the SupplierRepository interface
type PostgresSupplierRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(config *postgres.RepositoryConfig) docsysRepo.SupplierRepository {
	return &PostgresSupplierRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

// Create creates a new supplier
func (r *PostgresSupplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	query := `INSERT INTO suppliers (name, details) VALUES ($1, $2) RETURNING id`

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, supplier.Name, supplier.Details).Scan(&supplier.ID)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("supplier '%s' already exists", supplier.Name),
				ResourceType: "supplier",
				ResourceID:   r.existingID(ctx, supplier.Name),
			}
		}
		return fmt.Errorf("create supplier: %w", err)
	}

	return nil
}

func (r *PostgresSupplierRepository) existingID(ctx context.Context, name string) string {
	var id int64
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, `SELECT id FROM suppliers WHERE name = $1`, name).Scan(&id); err != nil {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// GetByID retrieves a supplier by ID
func (r *PostgresSupplierRepository) GetByID(ctx context.Context, id int64) (*models.Supplier, error) {
	query := `SELECT id, name, details FROM suppliers WHERE id = $1`

	var supplier models.Supplier
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(&supplier.ID, &supplier.Name, &supplier.Details)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("supplier %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}

	return &supplier, nil
}

// List lists all suppliers ordered by name
func (r *PostgresSupplierRepository) List(ctx context.Context) ([]models.Supplier, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, `SELECT id, name, details FROM suppliers ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := []models.Supplier{}
	for rows.Next() {
		var s models.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Details); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suppliers: %w", err)
	}

	return suppliers, nil
}

// Delete deletes a supplier
func (r *PostgresSupplierRepository) Delete(ctx context.Context, id int64) error {
	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("supplier %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
