package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/schedule"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/database"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

// Create implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedules (id, name)
		VALUES ($1, $2)
		RETURNING id, name, created_at, updated_at
	`

	var created schedule.Schedule
	err := q.QueryRow(ctx, query, s.ID, s.Name).Scan(
		&created.ID, &created.Name, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("failed to create schedule: %w", err)
	}

	if err := r.replaceDays(ctx, created.ID, s.Days); err != nil {
		return schedule.Schedule{}, err
	}
	created.Days = s.Days

	return created, nil
}

func (r *scheduleRepositoryImpl) replaceDays(ctx context.Context, scheduleID string, days map[time.Weekday]schedule.DaySpan) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM schedule_days WHERE schedule_id = $1`, scheduleID); err != nil {
		return fmt.Errorf("failed to clear schedule days: %w", err)
	}

	query := `
		INSERT INTO schedule_days (schedule_id, weekday, entry_time, exit_time)
		VALUES ($1, $2, $3, $4)
	`
	for _, wd := range schedule.Weekdays {
		span, ok := days[wd]
		if !ok {
			continue
		}
		if _, err := q.Exec(ctx, query, scheduleID, int(wd), span.Entry.String(), span.Exit.String()); err != nil {
			return fmt.Errorf("failed to insert schedule day %s: %w", wd, err)
		}
	}

	return nil
}

func (r *scheduleRepositoryImpl) loadDays(ctx context.Context, scheduleID string) (map[time.Weekday]schedule.DaySpan, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT weekday, entry_time, exit_time FROM schedule_days WHERE schedule_id = $1`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule days: %w", err)
	}
	defer rows.Close()

	days := make(map[time.Weekday]schedule.DaySpan)
	for rows.Next() {
		var weekday int
		var entryStr, exitStr string
		if err := rows.Scan(&weekday, &entryStr, &exitStr); err != nil {
			return nil, err
		}
		entry, err := schedule.ParseTimeOfDay(entryStr)
		if err != nil {
			return nil, err
		}
		exit, err := schedule.ParseTimeOfDay(exitStr)
		if err != nil {
			return nil, err
		}
		days[time.Weekday(weekday)] = schedule.DaySpan{Entry: entry, Exit: exit}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return days, nil
}

// GetByID implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	var s schedule.Schedule
	err := q.QueryRow(ctx, `SELECT id, name, created_at, updated_at FROM schedules WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get schedule %s: %w", id, err)
	}

	s.Days, err = r.loadDays(ctx, id)
	if err != nil {
		return schedule.Schedule{}, err
	}

	return s, nil
}

// List implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) List(ctx context.Context) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, created_at, updated_at FROM schedules ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		var s schedule.Schedule
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range schedules {
		schedules[i].Days, err = r.loadDays(ctx, schedules[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return schedules, nil
}

// Update implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Update(ctx context.Context, s schedule.Schedule) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE schedules SET name = $1, updated_at = NOW() WHERE id = $2`, s.Name, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update schedule %s: %w", s.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}

	return r.replaceDays(ctx, s.ID, s.Days)
}

// Delete implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM schedule_days WHERE schedule_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete schedule days: %w", err)
	}

	tag, err := q.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}

	return nil
}

// IsReferenced implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) IsReferenced(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (SELECT 1 FROM workers WHERE schedule_id = $1)
			OR EXISTS (SELECT 1 FROM schedule_assignments WHERE schedule_id = $1)
	`

	var referenced bool
	if err := q.QueryRow(ctx, query, id).Scan(&referenced); err != nil {
		return false, fmt.Errorf("failed to check schedule references: %w", err)
	}

	return referenced, nil
}

type assignmentRepositoryImpl struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) schedule.AssignmentRepository {
	return &assignmentRepositoryImpl{db: db}
}

// Create implements schedule.AssignmentRepository.
func (r *assignmentRepositoryImpl) Create(ctx context.Context, workerID, scheduleID string, effectiveFrom time.Time) (schedule.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return schedule.Assignment{}, fmt.Errorf("failed to generate assignment id: %w", err)
	}

	query := `
		INSERT INTO schedule_assignments (id, worker_id, schedule_id, effective_from)
		VALUES ($1, $2, $3, $4)
		RETURNING id, worker_id, schedule_id, effective_from, created_at
	`

	var a schedule.Assignment
	err = q.QueryRow(ctx, query, id.String(), workerID, scheduleID, effectiveFrom).Scan(
		&a.ID, &a.WorkerID, &a.ScheduleID, &a.EffectiveFrom, &a.CreatedAt,
	)
	if err != nil {
		return schedule.Assignment{}, fmt.Errorf("failed to create schedule assignment: %w", err)
	}

	return a, nil
}

// ListByWorker implements schedule.AssignmentRepository.
func (r *assignmentRepositoryImpl) ListByWorker(ctx context.Context, workerID string) ([]schedule.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.worker_id, a.schedule_id, a.effective_from, a.created_at, s.name
		FROM schedule_assignments a
		JOIN schedules s ON s.id = a.schedule_id
		WHERE a.worker_id = $1
		ORDER BY a.effective_from DESC, a.created_at DESC
	`

	rows, err := q.Query(ctx, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for worker %s: %w", workerID, err)
	}
	defer rows.Close()

	var assignments []schedule.Assignment
	for rows.Next() {
		var a schedule.Assignment
		if err := rows.Scan(&a.ID, &a.WorkerID, &a.ScheduleID, &a.EffectiveFrom, &a.CreatedAt, &a.ScheduleName); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
