package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"

	"importdocs/internal/domain"
	models "importdocs/internal/domain/models/docsystem"
	docsysRepo "importdocs/internal/domain/repositories/docsystem"
)

// SQLiteSupplierRepository implements the SupplierRepository interface
type SQLiteSupplierRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(config *RepositoryConfig) docsysRepo.SupplierRepository {
	return &SQLiteSupplierRepository{
		db:     config.DB,
		logger: config.Logger,
	}
}

// Create creates a new supplier
func (r *SQLiteSupplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	query := `INSERT INTO suppliers (name, details) VALUES (?, ?) RETURNING id`

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, query, supplier.Name, supplier.Details).Scan(&supplier.ID)
	if err != nil {
		if IsUniqueViolation(err) {
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

// existingID looks up the ID holding a name, empty if it cannot be found
func (r *SQLiteSupplierRepository) existingID(ctx context.Context, name string) string {
	var id int64
	executor := GetExecutor(ctx, r.db)
	if err := executor.QueryRowContext(ctx, `SELECT id FROM suppliers WHERE name = ?`, name).Scan(&id); err != nil {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// GetByID retrieves a supplier by ID
func (r *SQLiteSupplierRepository) GetByID(ctx context.Context, id int64) (*models.Supplier, error) {
	query := `SELECT id, name, details FROM suppliers WHERE id = ?`

	var supplier models.Supplier
	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, query, id).Scan(&supplier.ID, &supplier.Name, &supplier.Details)
	if err != nil {
		if IsNoRowsError(err) {
			return nil, fmt.Errorf("supplier %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}

	return &supplier, nil
}

// List lists all suppliers ordered by name
func (r *SQLiteSupplierRepository) List(ctx context.Context) ([]models.Supplier, error) {
	query := `SELECT id, name, details FROM suppliers ORDER BY name, id`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query)
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
func (r *SQLiteSupplierRepository) Delete(ctx context.Context, id int64) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM suppliers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}

	return requireAffected(result, fmt.Sprintf("supplier %d", id))
}

// requireAffected turns a statement that touched no rows into ErrNotFound
func requireAffected(result sql.Result, what string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return nil
}
