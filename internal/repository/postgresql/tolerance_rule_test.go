package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/database"
)

func newMockCtx(t *testing.T) (context.Context, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return WithQuerier(context.Background(), database.Querier(mock)), mock
}

var ruleColumns = []string{"id", "description", "status", "min_minutes", "max_minutes", "created_at", "updated_at"}

func TestToleranceRuleList(t *testing.T) {
	ctx, mock := newMockCtx(t)
	repo := NewToleranceRuleRepository(nil)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM tolerance_rules").
		WillReturnRows(pgxmock.NewRows(ruleColumns).
			AddRow("r1", "tolerated", "ON_TIME", 1, 10, now, now).
			AddRow("r2", "minor", "MINOR_DELAY", 11, 20, now, now))

	rules, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, attendance.StatusOnTime, rules[0].Status)
	assert.Equal(t, 11, rules[1].MinMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToleranceRuleGetByIDNotFound(t *testing.T) {
	ctx, mock := newMockCtx(t)
	repo := NewToleranceRuleRepository(nil)

	mock.ExpectQuery("SELECT (.+) FROM tolerance_rules").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(ruleColumns))

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, attendance.ErrToleranceRuleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToleranceRuleCreate(t *testing.T) {
	ctx, mock := newMockCtx(t)
	repo := NewToleranceRuleRepository(nil)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO tolerance_rules").
		WithArgs("r9", "hard absence", attendance.StatusAbsence, 31, 480).
		WillReturnRows(pgxmock.NewRows(ruleColumns).
			AddRow("r9", "hard absence", "ABSENCE", 31, 480, now, now))

	created, err := repo.Create(ctx, attendance.ToleranceRule{
		ID:          "r9",
		Description: "hard absence",
		Status:      attendance.StatusAbsence,
		MinMinutes:  31,
		MaxMinutes:  480,
	})
	require.NoError(t, err)
	assert.Equal(t, "r9", created.ID)
	assert.Equal(t, attendance.StatusAbsence, created.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToleranceRuleUpdateNotFound(t *testing.T) {
	ctx, mock := newMockCtx(t)
	repo := NewToleranceRuleRepository(nil)

	mock.ExpectExec("UPDATE tolerance_rules").
		WithArgs("renamed", attendance.StatusMinorDelay, 11, 20, "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(ctx, attendance.ToleranceRule{
		ID:          "missing",
		Description: "renamed",
		Status:      attendance.StatusMinorDelay,
		MinMinutes:  11,
		MaxMinutes:  20,
	})
	assert.ErrorIs(t, err, attendance.ErrToleranceRuleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToleranceRuleDelete(t *testing.T) {
	ctx, mock := newMockCtx(t)
	repo := NewToleranceRuleRepository(nil)

	mock.ExpectExec("DELETE FROM tolerance_rules").
		WithArgs("r1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(ctx, "r1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
