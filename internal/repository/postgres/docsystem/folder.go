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

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *postgres.RepositoryConfig) docsysRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `INSERT INTO folders (name, details) VALUES ($1, $2) RETURNING id`

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, folder.Name, folder.Details).Scan(&folder.ID)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			var existingID string
			var id int64
			if executor.QueryRow(ctx, `SELECT id FROM folders WHERE name = $1`, folder.Name).Scan(&id) == nil {
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
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	query := `SELECT id, name, details FROM folders WHERE id = $1`

	var folder models.Folder
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(&folder.ID, &folder.Name, &folder.Details)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// List lists all folders ordered by name
func (r *PostgresFolderRepository) List(ctx context.Context) ([]models.Folder, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, `SELECT id, name, details FROM folders ORDER BY name, id`)
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
func (r *PostgresFolderRepository) Delete(ctx context.Context, id int64) error {
	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, `DELETE FROM folders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
