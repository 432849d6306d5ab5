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

// PostgresDocumentRepository implements the DocumentRepository interface
// over both the documents and folder_documents tables.
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *postgres.RepositoryConfig) docsysRepo.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

// Create creates a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	table, owner, err := postgres.DocumentTable(doc.Scope)
	if err != nil {
		return err
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, doc_type, original_name, file_path, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, table, owner)

	executor := postgres.GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query,
		doc.OwnerID,
		doc.DocType,
		doc.OriginalName,
		doc.FilePath,
		doc.CreatedAt,
	).Scan(&doc.ID)

	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("%s %d: %w", doc.Scope.OwnerKind(), doc.OwnerID, domain.ErrNotFound)
		}
		if postgres.IsPgDuplicateError(err) {
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
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, scope models.DocumentScope, id int64) (*models.Document, error) {
	table, owner, err := postgres.DocumentTable(scope)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, %s, doc_type, original_name, file_path, created_at
		FROM %s
		WHERE id = $1
	`, owner, table)

	executor := postgres.GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, id), scope)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return doc, nil
}

// ListByOwner lists documents of one shipment or folder, newest first
func (r *PostgresDocumentRepository) ListByOwner(ctx context.Context, scope models.DocumentScope, ownerID int64) ([]models.Document, error) {
	table, owner, err := postgres.DocumentTable(scope)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, %s, doc_type, original_name, file_path, created_at
		FROM %s
		WHERE %s = $1
		ORDER BY id DESC
	`, owner, table, owner)

	return r.list(ctx, scope, query, ownerID)
}

// ListAll lists every document of a scope ordered by owner then ID
func (r *PostgresDocumentRepository) ListAll(ctx context.Context, scope models.DocumentScope) ([]models.Document, error) {
	table, owner, err := postgres.DocumentTable(scope)
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

func (r *PostgresDocumentRepository) list(ctx context.Context, scope models.DocumentScope, query string, args ...interface{}) ([]models.Document, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
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
func (r *PostgresDocumentRepository) UpdateDetails(ctx context.Context, scope models.DocumentScope, id int64, name, docType string) error {
	table, _, err := postgres.DocumentTable(scope)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET original_name = $1, doc_type = $2 WHERE id = $3`, table)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, name, docType, id)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// GetFilePathForUpdate reads the current blob key and locks the row until
// the surrounding transaction ends
func (r *PostgresDocumentRepository) GetFilePathForUpdate(ctx context.Context, scope models.DocumentScope, id int64) (string, error) {
	table, _, err := postgres.DocumentTable(scope)
	if err != nil {
		return "", err
	}

	var filePath string
	executor := postgres.GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, fmt.Sprintf(`SELECT file_path FROM %s WHERE id = $1 FOR UPDATE`, table), id).Scan(&filePath)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return "", fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
		}
		return "", fmt.Errorf("get document file path: %w", err)
	}

	return filePath, nil
}

// UpdateFile points the document at a new blob and display name
func (r *PostgresDocumentRepository) UpdateFile(ctx context.Context, scope models.DocumentScope, id int64, filePath, originalName string) error {
	table, _, err := postgres.DocumentTable(scope)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET file_path = $1, original_name = $2 WHERE id = $3`, table)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, filePath, originalName, id)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("file path '%s' is already in use", filePath),
				ResourceType: "document",
			}
		}
		return fmt.Errorf("update document file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a document row
func (r *PostgresDocumentRepository) Delete(ctx context.Context, scope models.DocumentScope, id int64) error {
	table, _, err := postgres.DocumentTable(scope)
	if err != nil {
		return err
	}

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListFilePathsBySupplier returns every blob key under a supplier's shipments
func (r *PostgresDocumentRepository) ListFilePathsBySupplier(ctx context.Context, supplierID int64) ([]string, error) {
	query := `
		SELECT d.file_path
		FROM documents d
		JOIN shipments sh ON d.shipment_id = sh.id
		WHERE sh.supplier_id = $1
		ORDER BY d.id
	`
	return r.filePaths(ctx, query, supplierID)
}

// ListFilePathsByShipment returns every blob key of a shipment
func (r *PostgresDocumentRepository) ListFilePathsByShipment(ctx context.Context, shipmentID int64) ([]string, error) {
	return r.filePaths(ctx, `SELECT file_path FROM documents WHERE shipment_id = $1 ORDER BY id`, shipmentID)
}

// ListFilePathsByFolder returns every blob key of a folder
func (r *PostgresDocumentRepository) ListFilePathsByFolder(ctx context.Context, folderID int64) ([]string, error) {
	return r.filePaths(ctx, `SELECT file_path FROM folder_documents WHERE folder_id = $1 ORDER BY id`, folderID)
}

func (r *PostgresDocumentRepository) filePaths(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list file paths: %w", err)
	}

	paths, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect file paths: %w", err)
	}

	return paths, nil
}

func scanDocument(row pgx.Row, scope models.DocumentScope) (*models.Document, error) {
	doc := models.Document{Scope: scope}
	err := row.Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.DocType,
		&doc.OriginalName,
		&doc.FilePath,
		&doc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
