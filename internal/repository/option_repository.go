package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/careplan-api/internal/models"
)

// OptionRepository persists controlled vocabularies in config_options.
type OptionRepository struct {
	db *sqlx.DB
}

// NewOptionRepository constructs the repository.
func NewOptionRepository(db *sqlx.DB) *OptionRepository {
	return &OptionRepository{db: db}
}

// List returns every option ordered by label.
func (r *OptionRepository) List(ctx context.Context) ([]models.ConfigOption, error) {
	const query = `SELECT id, type, label, created_at FROM config_options ORDER BY label ASC`
	var options []models.ConfigOption
	if err := r.db.SelectContext(ctx, &options, query); err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	return options, nil
}

// Exists reports whether label is registered for the vocabulary.
func (r *OptionRepository) Exists(ctx context.Context, optionType models.OptionType, label string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM config_options WHERE type = $1 AND label = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, optionType, label); err != nil {
		return false, fmt.Errorf("check option %s/%s: %w", optionType, label, err)
	}
	return exists, nil
}

// Create inserts a new option.
func (r *OptionRepository) Create(ctx context.Context, option *models.ConfigOption) error {
	if option.ID == "" {
		option.ID = uuid.NewString()
	}
	if option.CreatedAt.IsZero() {
		option.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO config_options (id, type, label, created_at) VALUES (:id, :type, :label, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, option); err != nil {
		return fmt.Errorf("create option: %w", err)
	}
	return nil
}

// Rename changes the label of an existing option. sql.ErrNoRows is returned
// when no option carries oldLabel.
func (r *OptionRepository) Rename(ctx context.Context, optionType models.OptionType, oldLabel, newLabel string) error {
	const query = `UPDATE config_options SET label = $1 WHERE type = $2 AND label = $3`
	res, err := r.db.ExecContext(ctx, query, newLabel, optionType, oldLabel)
	if err != nil {
		return fmt.Errorf("rename option: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an option. sql.ErrNoRows is returned when nothing matched.
func (r *OptionRepository) Delete(ctx context.Context, optionType models.OptionType, label string) error {
	const query = `DELETE FROM config_options WHERE type = $1 AND label = $2`
	res, err := r.db.ExecContext(ctx, query, optionType, label)
	if err != nil {
		return fmt.Errorf("delete option: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
