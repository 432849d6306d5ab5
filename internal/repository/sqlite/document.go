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

// SQLiteDocumentRepository implements the DocumentRepository interface
// over both the documents and folder_documents tables.
type SQLiteDocumentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) docsysRepo.DocumentRepository {
	return &SQLiteDocumentRepository{
		db:     config.DB,
		logger: config.Logger,
	}
}

// Create creates a new document
func (r *SQLiteDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	table, owner, err := documentTable(doc.Scope)
	if err != nil {
		return err
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, doc_type, original_name, file_path, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, table, owner)

	executor := GetExecutor(ctx, r.db)
	err = executor.QueryRowContext(ctx, query,
		doc.OwnerID,
		doc.DocType,
		doc.OriginalName,
		doc.FilePath,
		formatTime(doc.CreatedAt),
	).Scan(&doc.ID)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%s %d: %w", doc.Scope.OwnerKind(), doc.OwnerID, domain.ErrNotFound)
		}
		if IsUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("file path '%s' is already in use", doc.FilePath),
				ResourceType: "document",
			}
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID
func (r *SQLiteDocumentRepository) GetByID(ctx context.Context, scope models.DocumentScope, id int64) (*models.Document, error) {
	table, owner, err := documentTable(scope)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, %s, doc_type, original_name, file_path, created_at
		FROM %s
		WHERE id = ?
	`, owner, table)

	executor := GetExecutor(ctx, r.db)
	doc, err := scanDocument(executor.QueryRowContext(ctx, query, id), scope)
	if err != nil {
		if IsNoRowsError(err) {
			return nil, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return doc, nil
}

// ListByOwner lists documents of one shipment or folder, newest first
func (r *SQLiteDocumentRepository) ListByOwner(ctx context.Context, scope models.DocumentScope, ownerID int64) ([]models.Document, error) {
	table, owner, err := documentTable(scope)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, %s, doc_type, original_name, file_path, created_at
		FROM %s
		WHERE %s = ?
		ORDER BY id DESC
	`, owner, table, owner)

	return r.list(ctx, scope, query, ownerID)
}

// ListAll lists every document of a scope ordered by owner then ID
func (r *SQLiteDocumentRepository) ListAll(ctx context.Context, scope models.DocumentScope) ([]models.Document, error) {
	table, owner, err := documentTable(scope)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, %s, doc_type, original_name, file_path, created_at
		FROM %s
		ORDER BY %s, id
	`, owner, table, owner)

	return r.list(ctx, scope, query)
}

func (r *SQLiteDocumentRepository) list(ctx context.Context, scope models.DocumentScope, query string, args ...interface{}) ([]models.Document, error) {
	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows, scope)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

// UpdateDetails sets original_name and doc_type
func (r *SQLiteDocumentRepository) UpdateDetails(ctx context.Context, scope models.DocumentScope, id int64, name, docType string) error {
	table, _, err := documentTable(scope)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET original_name = ?, doc_type = ? WHERE id = ?`, table)

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, name, docType, id)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}

	return requireAffected(result, fmt.Sprintf("document %d", id))
}

// GetFilePathForUpdate reads the current blob key.
// SQLite has no row locks; the single-writer transaction serializes callers.
func (r *SQLiteDocumentRepository) GetFilePathForUpdate(ctx context.Context, scope models.DocumentScope, id int64) (string, error) {
	table, _, err := documentTable(scope)
	if err != nil {
		return "", err
	}

	var filePath string
	executor := GetExecutor(ctx, r.db)
	err = executor.QueryRowContext(ctx, fmt.Sprintf(`SELECT file_path FROM %s WHERE id = ?`, table), id).Scan(&filePath)
	if err != nil {
		if IsNoRowsError(err) {
			return "", fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
		}
		return "", fmt.Errorf("get document file path: %w", err)
	}

	return filePath, nil
}

// UpdateFile points the document at a new blob and display name
func (r *SQLiteDocumentRepository) UpdateFile(ctx context.Context, scope models.DocumentScope, id int64, filePath, originalName string) error {
	table, _, err := documentTable(scope)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET file_path = ?, original_name = ? WHERE id = ?`, table)

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, filePath, originalName, id)
	if err != nil {
		if IsUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("file path '%s' is already in use", filePath),
				ResourceType: "document",
			}
		}
		return fmt.Errorf("update document file: %w", err)
	}

	return requireAffected(result, fmt.Sprintf("document %d", id))
}

// Delete deletes a document row
func (r *SQLiteDocumentRepository) Delete(ctx context.Context, scope models.DocumentScope, id int64) error {
	table, _, err := documentTable(scope)
	if err != nil {
		return err
	}

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	return requireAffected(result, fmt.Sprintf("document %d", id))
}

// ListFilePathsBySupplier returns every blob key under a supplier's shipments
func (r *SQLiteDocumentRepository) ListFilePathsBySupplier(ctx context.Context, supplierID int64) ([]string, error) {
	query := `
		SELECT d.file_path
		FROM documents d
		JOIN shipments sh ON d.shipment_id = sh.id
		WHERE sh.supplier_id = ?
		ORDER BY d.id
	`
	return r.filePaths(ctx, query, supplierID)
}

// ListFilePathsByShipment returns every blob key of a shipment
func (r *SQLiteDocumentRepository) ListFilePathsByShipment(ctx context.Context, shipmentID int64) ([]string, error) {
	return r.filePaths(ctx, `SELECT file_path FROM documents WHERE shipment_id = ? ORDER BY id`, shipmentID)
}

// ListFilePathsByFolder returns every blob key of a folder
func (r *SQLiteDocumentRepository) ListFilePathsByFolder(ctx context.Context, folderID int64) ([]string, error) {
	return r.filePaths(ctx, `SELECT file_path FROM folder_documents WHERE folder_id = ? ORDER BY id`, folderID)
}

func (r *SQLiteDocumentRepository) filePaths(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list file paths: %w", err)
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan file path: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate file paths: %w", err)
	}

	return paths, nil
}

func scanDocument(row rowScanner, scope models.DocumentScope) (*models.Document, error) {
	doc := models.Document{Scope: scope}
	err := row.Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.DocType,
		&doc.OriginalName,
		&doc.FilePath,
		scanTime(&doc.CreatedAt),
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
