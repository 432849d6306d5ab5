package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	models "importdocs/internal/domain/models/docsystem"
	docsysRepo "importdocs/internal/domain/repositories/docsystem"
	"importdocs/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresExportRepository implements the ExportRepository interface
type PostgresExportRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewExportRepository creates a new export repository
func NewExportRepository(config *postgres.RepositoryConfig) docsysRepo.ExportRepository {
	return &PostgresExportRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

// Both queries drop shipments without a supplier; a count never includes a
// row the archive would not contain.
const (
	supplierEntriesFrom = `
		FROM documents d
		JOIN shipments sh ON d.shipment_id = sh.id
		JOIN suppliers s ON sh.supplier_id = s.id`

	folderEntriesFrom = `
		FROM folder_documents fd
		JOIN folders f ON fd.folder_id = f.id`
)

// ListEntries returns archive entries in archive order
func (r *PostgresExportRepository) ListEntries(ctx context.Context, scope models.ExportScope) ([]models.ExportEntry, error) {
	executor := postgres.GetExecutor(ctx, r.pool)

	supplierQuery := `SELECT s.name, sh.name, d.original_name, d.file_path, d.created_at` + supplierEntriesFrom
	var args []interface{}
	if !scope.All() {
		supplierQuery += ` WHERE s.id = $1`
		args = append(args, *scope.SupplierID)
	}
	supplierQuery += ` ORDER BY s.name, s.id, sh.id, d.id`

	rows, err := executor.Query(ctx, supplierQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplier export entries: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExportEntry, error) {
		entry := models.ExportEntry{Subtree: models.SubtreeSuppliers, Owners: make([]string, 2)}
		err := row.Scan(&entry.Owners[0], &entry.Owners[1], &entry.OriginalName, &entry.FilePath, &entry.CreatedAt)
		return entry, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan supplier export entries: %w", err)
	}

	if !scope.All() {
		return entries, nil
	}

	rows, err = executor.Query(ctx, `SELECT f.name, fd.original_name, fd.file_path, fd.created_at`+folderEntriesFrom+
		` ORDER BY f.name, f.id, fd.id`)
	if err != nil {
		return nil, fmt.Errorf("list folder export entries: %w", err)
	}
	folderEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExportEntry, error) {
		entry := models.ExportEntry{Subtree: models.SubtreeFolders, Owners: make([]string, 1)}
		err := row.Scan(&entry.Owners[0], &entry.OriginalName, &entry.FilePath, &entry.CreatedAt)
		return entry, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan folder export entries: %w", err)
	}

	return append(entries, folderEntries...), nil
}

// CountEntries counts the rows ListEntries would return
func (r *PostgresExportRepository) CountEntries(ctx context.Context, scope models.ExportScope) (int, error) {
	executor := postgres.GetExecutor(ctx, r.pool)

	var count int
	if !scope.All() {
		query := `SELECT COUNT(*)` + supplierEntriesFrom + ` WHERE s.id = $1`
		if err := executor.QueryRow(ctx, query, *scope.SupplierID).Scan(&count); err != nil {
			return 0, fmt.Errorf("count supplier export entries: %w", err)
		}
		return count, nil
	}

	query := `SELECT (SELECT COUNT(*)` + supplierEntriesFrom + `) + (SELECT COUNT(*)` + folderEntriesFrom + `)`
	if err := executor.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count export entries: %w", err)
	}
	return count, nil
}
