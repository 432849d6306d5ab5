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

// SQLiteFolderRepository implements the FolderRepository interface
type SQLiteFolderRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) docsysRepo.FolderRepository {
	return &SQLiteFolderRepository{
		db:     config.DB,
		logger: config.Logger,
	}
}

// Create creates a new folder
func (r *SQLiteFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `INSERT INTO folders (name, details) VALUES (?, ?) RETURNING id`

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, query, folder.Name, folder.Details).Scan(&folder.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			var existingID string
			var id int64
			if executor.QueryRowContext(ctx, `SELECT id FROM folders WHERE name = ?`, folder.Name).Scan(&id) == nil {
				existingID = strconv.FormatInt(id, 10)
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("folder '%s' already exists", folder.Name),
				ResourceType: "folder",
				ResourceID:   existingID,
			}
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *SQLiteFolderRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	query := `SELECT id, name, details FROM folders WHERE id = ?`

	var folder models.Folder
	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, query, id).Scan(&folder.ID, &folder.Name, &folder.Details)
	if err != nil {
		if IsNoRowsError(err) {
			return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// List lists all folders ordered by name
func (r *SQLiteFolderRepository) List(ctx context.Context) ([]models.Folder, error) {
	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, `SELECT id, name, details FROM folders ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.Details); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// Delete deletes a folder
func (r *SQLiteFolderRepository) Delete(ctx context.Context, id int64) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	return requireAffected(result, fmt.Sprintf("folder %d", id))
}
