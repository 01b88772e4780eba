package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/careplan-api/internal/models"
)

// ProfileRepository persists professional profiles.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository constructs the repository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByID returns a profile. sql.ErrNoRows is returned unwrapped.
func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	const query = `SELECT id, username, unidade, equipe, microarea, role, updated_at FROM profiles WHERE id = $1`
	var profile models.Profile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &profile, nil
}

// Upsert inserts or updates a profile.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	now := time.Now().UTC()
	profile.UpdatedAt = &now
	const query = `INSERT INTO profiles (id, username, unidade, equipe, microarea, role, updated_at)
VALUES (:id, :username, :unidade, :equipe, :microarea, :role, :updated_at)
ON CONFLICT (id)
DO UPDATE SET username = EXCLUDED.username, unidade = EXCLUDED.unidade, equipe = EXCLUDED.equipe,
              microarea = EXCLUDED.microarea, role = EXCLUDED.role, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// UpdateRole changes only the privilege level of a profile.
func (r *ProfileRepository) UpdateRole(ctx context.Context, id string, role models.ProfileRole) error {
	const query = `UPDATE profiles SET role = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, role, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update profile role: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
