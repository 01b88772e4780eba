package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/careplan-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

var planRowColumns = []string{
	"id", "professional_id", "eixo", "linha_cuidado", "status", "apoiadores", "categorias", "resumo", "meta",
	"avaliacao", "ciclo", "data_inicial", "data_final", "observacoes", "created_at",
}

func TestPlanRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(planRowColumns).
		AddRow("p-1", "u-1", "INOVAÇÃO", "SAÚDE MENTAL", "EM ANDAMENTO", "{ANA,\"BRUNO S\"}", nil, "resumo", "meta",
			"MENSAL", nil, "2024-01-15", nil, nil, created)
	mock.ExpectQuery("SELECT id, professional_id, eixo").WillReturnRows(rows)

	plans, err := NewPlanRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, []string{"ANA", "BRUNO S"}, []string(plans[0].Supporters))
	assert.Empty(t, plans[0].Categories)
	assert.Equal(t, models.PlanStatusInProgress, plans[0].Status)
	assert.Equal(t, "2024-01-15", plans[0].StartDate.String())
	assert.True(t, plans[0].EndDate.IsZero())
	assert.Nil(t, plans[0].Cycle)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, professional_id").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := NewPlanRepository(db).FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPlanRepositoryCreateAssignsIdentity(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO plans").WillReturnResult(sqlmock.NewResult(1, 1))

	plan := &models.Plan{
		OwnerID:    "u-1",
		Axis:       models.AxisInnovation,
		CareLine:   "SAÚDE MENTAL",
		Status:     models.PlanStatusPlanned,
		Supporters: []string{"ANA"},
		StartDate:  models.MustCalendarDate("2024-02-01"),
	}
	require.NoError(t, NewPlanRepository(db).Create(context.Background(), plan))
	assert.NotEmpty(t, plan.ID)
	assert.False(t, plan.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryUpdateMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	mock.ExpectExec("UPDATE plans SET eixo").WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewPlanRepository(db).Update(context.Background(), &models.Plan{ID: "p-x"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPlanRepositoryRenameScalar(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE plans SET linha_cuidado = \$1 WHERE linha_cuidado = \$2`).
		WithArgs("SAÚDE DO HOMEM", "SAUDE HOMEM").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := NewPlanRepository(db).RenameScalar(context.Background(), models.OptionTypeCareLine, "SAUDE HOMEM", "SAÚDE DO HOMEM")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	_, err = NewPlanRepository(db).RenameScalar(context.Background(), models.OptionTypeSupporter, "A", "B")
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryListReferencingAndUpdateLabels(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	rows := sqlmock.NewRows(planRowColumns).
		AddRow("p-1", "u-1", "INOVAÇÃO", "SAÚDE MENTAL", "PLANEJADO", "{A,B}", nil, "", "",
			"MENSAL", nil, "2024-01-15", nil, nil, time.Now())
	mock.ExpectQuery(`WHERE \$1 = ANY\(apoiadores\)`).WithArgs("A").WillReturnRows(rows)
	mock.ExpectExec(`UPDATE plans SET apoiadores = \$1 WHERE id = \$2`).
		WithArgs("{\"C\",\"B\"}", "p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPlanRepository(db)
	plans, err := repo.ListReferencing(context.Background(), models.OptionTypeSupporter, "A")
	require.NoError(t, err)
	require.Len(t, plans, 1)
	require.NoError(t, repo.UpdateLabels(context.Background(), "p-1", models.OptionTypeSupporter, []string{"C", "B"}))
	require.NoError(t, mock.ExpectationsWereMet())
}
