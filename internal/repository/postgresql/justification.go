package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/justification"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/database"
)

type justificationRepositoryImpl struct {
	db *database.DB
}

func NewJustificationRepository(db *database.DB) justification.JustificationRepository {
	return &justificationRepositoryImpl{db: db}
}

const justificationColumns = `j.id, j.worker_id, j.date, j.rule_id, j.created_at,
		w.first_name || ' ' || w.last_name, rr.description`

func scanJustification(row pgx.Row) (justification.Justification, error) {
	var j justification.Justification
	err := row.Scan(&j.ID, &j.WorkerID, &j.Date, &j.RuleID, &j.CreatedAt, &j.WorkerName, &j.RuleDescription)
	return j, err
}

// Create implements justification.JustificationRepository.
func (r *justificationRepositoryImpl) Create(ctx context.Context, j justification.Justification) (justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO justifications (id, worker_id, date, rule_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, worker_id, date, rule_id, created_at
	`

	var created justification.Justification
	err := q.QueryRow(ctx, query, j.ID, j.WorkerID, j.Date, j.RuleID).Scan(
		&created.ID, &created.WorkerID, &created.Date, &created.RuleID, &created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return justification.Justification{}, justification.ErrDuplicateJustification
		}
		return justification.Justification{}, fmt.Errorf("failed to create justification: %w", err)
	}

	return created, nil
}

// GetByID implements justification.JustificationRepository.
func (r *justificationRepositoryImpl) GetByID(ctx context.Context, id string) (justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + justificationColumns + `
		FROM justifications j
		JOIN workers w ON w.id = j.worker_id
		JOIN justification_rules rr ON rr.id = j.rule_id
		WHERE j.id = $1
	`

	j, err := scanJustification(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return justification.Justification{}, justification.ErrJustificationNotFound
		}
		return justification.Justification{}, fmt.Errorf("failed to get justification %s: %w", id, err)
	}

	return j, nil
}

// GetByWorkerAndDate implements justification.JustificationRepository.
func (r *justificationRepositoryImpl) GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (*justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + justificationColumns + `
		FROM justifications j
		JOIN workers w ON w.id = j.worker_id
		JOIN justification_rules rr ON rr.id = j.rule_id
		WHERE j.worker_id = $1 AND j.date = $2::date
	`

	j, err := scanJustification(q.QueryRow(ctx, query, workerID, date.Format("2006-01-02")))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get justification for worker %s: %w", workerID, err)
	}

	return &j, nil
}

// ListByWorkerBetween implements justification.JustificationRepository.
func (r *justificationRepositoryImpl) ListByWorkerBetween(ctx context.Context, workerID string, start, end time.Time) ([]justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + justificationColumns + `
		FROM justifications j
		JOIN workers w ON w.id = j.worker_id
		JOIN justification_rules rr ON rr.id = j.rule_id
		WHERE j.worker_id = $1 AND j.date BETWEEN $2::date AND $3::date
		ORDER BY j.date ASC
	`

	rows, err := q.Query(ctx, query, workerID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list justifications for worker %s: %w", workerID, err)
	}
	defer rows.Close()

	var justifications []justification.Justification
	for rows.Next() {
		j, err := scanJustification(rows)
		if err != nil {
			return nil, err
		}
		justifications = append(justifications, j)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return justifications, nil
}

// List implements justification.JustificationRepository.
func (r *justificationRepositoryImpl) List(ctx context.Context, filter justification.JustificationFilter) ([]justification.Justification, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if filter.WorkerID != nil {
		conditions = append(conditions, fmt.Sprintf("j.worker_id = $%d", argPos))
		args = append(args, *filter.WorkerID)
		argPos++
	}
	if filter.RuleID != nil {
		conditions = append(conditions, fmt.Sprintf("j.rule_id = $%d", argPos))
		args = append(args, *filter.RuleID)
		argPos++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("j.date >= $%d::date", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("j.date <= $%d::date", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM justifications j WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count justifications: %w", err)
	}

	query := `
		SELECT ` + justificationColumns + `
		FROM justifications j
		JOIN workers w ON w.id = j.worker_id
		JOIN justification_rules rr ON rr.id = j.rule_id
		WHERE ` + where + `
		ORDER BY j.date DESC
	`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list justifications: %w", err)
	}
	defer rows.Close()

	var justifications []justification.Justification
	for rows.Next() {
		j, err := scanJustification(rows)
		if err != nil {
			return nil, 0, err
		}
		justifications = append(justifications, j)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return justifications, total, nil
}

// Delete implements justification.JustificationRepository.
func (r *justificationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM justifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete justification %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return justification.ErrJustificationNotFound
	}

	return nil
}

type reasonRuleRepositoryImpl struct {
	db *database.DB
}

func NewReasonRuleRepository(db *database.DB) justification.ReasonRuleRepository {
	return &reasonRuleRepositoryImpl{db: db}
}

// Create implements justification.ReasonRuleRepository.
func (r *reasonRuleRepositoryImpl) Create(ctx context.Context, rule justification.ReasonRule) (justification.ReasonRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO justification_rules (id, description)
		VALUES ($1, $2)
		RETURNING id, description, created_at, updated_at
	`

	var created justification.ReasonRule
	err := q.QueryRow(ctx, query, rule.ID, rule.Description).Scan(
		&created.ID, &created.Description, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return justification.ReasonRule{}, fmt.Errorf("failed to create justification rule: %w", err)
	}

	return created, nil
}

// GetByID implements justification.ReasonRuleRepository.
func (r *reasonRuleRepositoryImpl) GetByID(ctx context.Context, id string) (justification.ReasonRule, error) {
	q := GetQuerier(ctx, r.db)

	var rule justification.ReasonRule
	err := q.QueryRow(ctx, `SELECT id, description, created_at, updated_at FROM justification_rules WHERE id = $1`, id).Scan(
		&rule.ID, &rule.Description, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return justification.ReasonRule{}, justification.ErrReasonRuleNotFound
		}
		return justification.ReasonRule{}, fmt.Errorf("failed to get justification rule %s: %w", id, err)
	}

	return rule, nil
}

// List implements justification.ReasonRuleRepository.
func (r *reasonRuleRepositoryImpl) List(ctx context.Context) ([]justification.ReasonRule, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, description, created_at, updated_at FROM justification_rules ORDER BY description`)
	if err != nil {
		return nil, fmt.Errorf("failed to list justification rules: %w", err)
	}
	defer rows.Close()

	var rules []justification.ReasonRule
	for rows.Next() {
		var rule justification.ReasonRule
		if err := rows.Scan(&rule.ID, &rule.Description, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}

// Update implements justification.ReasonRuleRepository.
func (r *reasonRuleRepositoryImpl) Update(ctx context.Context, rule justification.ReasonRule) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE justification_rules SET description = $1, updated_at = NOW() WHERE id = $2`, rule.Description, rule.ID)
	if err != nil {
		return fmt.Errorf("failed to update justification rule %s: %w", rule.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return justification.ErrReasonRuleNotFound
	}

	return nil
}

// Delete implements justification.ReasonRuleRepository.
func (r *reasonRuleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM justification_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete justification rule %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return justification.ErrReasonRuleNotFound
	}

	return nil
}

// IsReferenced implements justification.ReasonRuleRepository.
func (r *reasonRuleRepositoryImpl) IsReferenced(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var referenced bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM justifications WHERE rule_id = $1)`, id).Scan(&referenced)
	if err != nil {
		return false, fmt.Errorf("failed to check justification rule references: %w", err)
	}

	return referenced, nil
}
