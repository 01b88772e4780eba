package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/careplan-api/internal/models"
)

const planColumns = `id, professional_id, eixo, linha_cuidado, status, apoiadores, categorias, resumo, meta,
avaliacao, ciclo, data_inicial, data_final, observacoes, created_at`

// PlanRepository persists plans in the plans table.
type PlanRepository struct {
	db *sqlx.DB
}

// NewPlanRepository constructs the repository.
func NewPlanRepository(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// List returns every plan, newest first.
func (r *PlanRepository) List(ctx context.Context) ([]models.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY created_at DESC`
	var plans []models.Plan
	if err := r.db.SelectContext(ctx, &plans, query); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// FindByID returns a plan by identifier. sql.ErrNoRows is returned unwrapped.
func (r *PlanRepository) FindByID(ctx context.Context, id string) (*models.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`
	var plan models.Plan
	if err := r.db.GetContext(ctx, &plan, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find plan: %w", err)
	}
	return &plan, nil
}

// Create inserts a plan, assigning id and created_at when missing.
func (r *PlanRepository) Create(ctx context.Context, plan *models.Plan) error {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO plans (id, professional_id, eixo, linha_cuidado, status, apoiadores, categorias, resumo, meta,
avaliacao, ciclo, data_inicial, data_final, observacoes, created_at)
VALUES (:id, :professional_id, :eixo, :linha_cuidado, :status, :apoiadores, :categorias, :resumo, :meta,
:avaliacao, :ciclo, :data_inicial, :data_final, :observacoes, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, plan); err != nil {
		return fmt.Errorf("create plan: %w", err)
	}
	return nil
}

// Update writes the mutable fields of a plan. Identity, owner and creation
// time are never touched.
func (r *PlanRepository) Update(ctx context.Context, plan *models.Plan) error {
	const query = `UPDATE plans SET eixo = :eixo, linha_cuidado = :linha_cuidado, status = :status,
apoiadores = :apoiadores, categorias = :categorias, resumo = :resumo, meta = :meta, avaliacao = :avaliacao,
ciclo = :ciclo, data_inicial = :data_inicial, data_final = :data_final, observacoes = :observacoes
WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, plan)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a plan.
func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// RenameScalar rewrites every plan whose scalar option column equals oldLabel.
func (r *PlanRepository) RenameScalar(ctx context.Context, optionType models.OptionType, oldLabel, newLabel string) (int64, error) {
	if optionType.SetValued() || optionType.PlanColumn() == "" {
		return 0, fmt.Errorf("rename scalar: unsupported option type %q", optionType)
	}
	column := optionType.PlanColumn()
	query := fmt.Sprintf(`UPDATE plans SET %s = $1 WHERE %s = $2`, column, column)
	res, err := r.db.ExecContext(ctx, query, newLabel, oldLabel)
	if err != nil {
		return 0, fmt.Errorf("rename %s: %w", column, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rename %s rows: %w", column, err)
	}
	return affected, nil
}

// ListReferencing returns plans whose array option column contains label.
func (r *PlanRepository) ListReferencing(ctx context.Context, optionType models.OptionType, label string) ([]models.Plan, error) {
	if !optionType.SetValued() {
		return nil, fmt.Errorf("list referencing: unsupported option type %q", optionType)
	}
	query := fmt.Sprintf(`SELECT %s FROM plans WHERE $1 = ANY(%s) ORDER BY created_at DESC`, planColumns, optionType.PlanColumn())
	var plans []models.Plan
	if err := r.db.SelectContext(ctx, &plans, query, label); err != nil {
		return nil, fmt.Errorf("list plans referencing %s: %w", label, err)
	}
	return plans, nil
}

// UpdateLabels overwrites one array option column of a single plan.
func (r *PlanRepository) UpdateLabels(ctx context.Context, id string, optionType models.OptionType, labels []string) error {
	if !optionType.SetValued() {
		return fmt.Errorf("update labels: unsupported option type %q", optionType)
	}
	query := fmt.Sprintf(`UPDATE plans SET %s = $1 WHERE id = $2`, optionType.PlanColumn())
	if _, err := r.db.ExecContext(ctx, query, pq.StringArray(labels), id); err != nil {
		return fmt.Errorf("update %s of plan %s: %w", optionType.PlanColumn(), id, err)
	}
	return nil
}
