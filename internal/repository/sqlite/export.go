package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	models "importdocs/internal/domain/models/docsystem"
	docsysRepo "importdocs/internal/domain/repositories/docsystem"
)

// SQLiteExportRepository implements the ExportRepository interface
type SQLiteExportRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewExportRepository creates a new export repository
func NewExportRepository(config *RepositoryConfig) docsysRepo.ExportRepository {
	return &SQLiteExportRepository{
		db:     config.DB,
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
func (r *SQLiteExportRepository) ListEntries(ctx context.Context, scope models.ExportScope) ([]models.ExportEntry, error) {
	entries := []models.ExportEntry{}

	supplierQuery := `SELECT s.name, sh.name, d.original_name, d.file_path, d.created_at` + supplierEntriesFrom
	var args []interface{}
	if !scope.All() {
		supplierQuery += ` WHERE s.id = ?`
		args = append(args, *scope.SupplierID)
	}
	supplierQuery += ` ORDER BY s.name, s.id, sh.id, d.id`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, supplierQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplier export entries: %w", err)
	}
	entries, err = appendEntries(entries, rows, models.SubtreeSuppliers, 2)
	if err != nil {
		return nil, err
	}

	if !scope.All() {
		return entries, nil
	}

	folderQuery := `SELECT f.name, fd.original_name, fd.file_path, fd.created_at` + folderEntriesFrom +
		` ORDER BY f.name, f.id, fd.id`
	rows, err = executor.QueryContext(ctx, folderQuery)
	if err != nil {
		return nil, fmt.Errorf("list folder export entries: %w", err)
	}
	return appendEntries(entries, rows, models.SubtreeFolders, 1)
}

// appendEntries drains rows of (owner names..., original_name, file_path, created_at)
func appendEntries(entries []models.ExportEntry, rows *sql.Rows, subtree string, owners int) ([]models.ExportEntry, error) {
	defer rows.Close()

	for rows.Next() {
		entry := models.ExportEntry{Subtree: subtree, Owners: make([]string, owners)}
		dest := make([]interface{}, 0, owners+3)
		for i := range entry.Owners {
			dest = append(dest, &entry.Owners[i])
		}
		dest = append(dest, &entry.OriginalName, &entry.FilePath, scanTime(&entry.CreatedAt))

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan export entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate export entries: %w", err)
	}

	return entries, nil
}

// CountEntries counts the rows ListEntries would return
func (r *SQLiteExportRepository) CountEntries(ctx context.Context, scope models.ExportScope) (int, error) {
	executor := GetExecutor(ctx, r.db)

	var count int
	if !scope.All() {
		query := `SELECT COUNT(*)` + supplierEntriesFrom + ` WHERE s.id = ?`
		if err := executor.QueryRowContext(ctx, query, *scope.SupplierID).Scan(&count); err != nil {
			return 0, fmt.Errorf("count supplier export entries: %w", err)
		}
		return count, nil
	}

	query := `SELECT (SELECT COUNT(*)` + supplierEntriesFrom + `) + (SELECT COUNT(*)` + folderEntriesFrom + `)`
	if err := executor.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count export entries: %w", err)
	}
	return count, nil
}
