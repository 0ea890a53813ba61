package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/database"
)

type toleranceRuleRepositoryImpl struct {
	db *database.DB
}

func NewToleranceRuleRepository(db *database.DB) attendance.ToleranceRuleRepository {
	return &toleranceRuleRepositoryImpl{db: db}
}

// List implements attendance.ToleranceRuleRepository.
func (r *toleranceRuleRepositoryImpl) List(ctx context.Context) ([]attendance.ToleranceRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, description, status, min_minutes, max_minutes, created_at, updated_at
		FROM tolerance_rules
		ORDER BY min_minutes ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tolerance rules: %w", err)
	}
	defer rows.Close()

	var rules []attendance.ToleranceRule
	for rows.Next() {
		var rule attendance.ToleranceRule
		if err := rows.Scan(
			&rule.ID, &rule.Description, &rule.Status, &rule.MinMinutes, &rule.MaxMinutes,
			&rule.CreatedAt, &rule.UpdatedAt,
		); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}

// GetByID implements attendance.ToleranceRuleRepository.
func (r *toleranceRuleRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.ToleranceRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, description, status, min_minutes, max_minutes, created_at, updated_at
		FROM tolerance_rules
		WHERE id = $1
	`

	var rule attendance.ToleranceRule
	err := q.QueryRow(ctx, query, id).Scan(
		&rule.ID, &rule.Description, &rule.Status, &rule.MinMinutes, &rule.MaxMinutes,
		&rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ToleranceRule{}, attendance.ErrToleranceRuleNotFound
		}
		return attendance.ToleranceRule{}, fmt.Errorf("failed to get tolerance rule %s: %w", id, err)
	}

	return rule, nil
}

// Create implements attendance.ToleranceRuleRepository.
func (r *toleranceRuleRepositoryImpl) Create(ctx context.Context, rule attendance.ToleranceRule) (attendance.ToleranceRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tolerance_rules (id, description, status, min_minutes, max_minutes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, description, status, min_minutes, max_minutes, created_at, updated_at
	`

	var created attendance.ToleranceRule
	err := q.QueryRow(ctx, query, rule.ID, rule.Description, rule.Status, rule.MinMinutes, rule.MaxMinutes).Scan(
		&created.ID, &created.Description, &created.Status, &created.MinMinutes, &created.MaxMinutes,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return attendance.ToleranceRule{}, fmt.Errorf("failed to create tolerance rule: %w", err)
	}

	return created, nil
}

// Update implements attendance.ToleranceRuleRepository.
func (r *toleranceRuleRepositoryImpl) Update(ctx context.Context, rule attendance.ToleranceRule) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tolerance_rules
		SET description = $1, status = $2, min_minutes = $3, max_minutes = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, rule.Description, rule.Status, rule.MinMinutes, rule.MaxMinutes, rule.ID)
	if err != nil {
		return fmt.Errorf("failed to update tolerance rule %s: %w", rule.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrToleranceRuleNotFound
	}

	return nil
}

// Delete implements attendance.ToleranceRuleRepository.
func (r *toleranceRuleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tolerance_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tolerance rule %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrToleranceRuleNotFound
	}

	return nil
}
