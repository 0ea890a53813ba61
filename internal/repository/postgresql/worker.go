package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/worker"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/database"
)

type workerRepositoryImpl struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepositoryImpl{db: db}
}

const workerColumns = `w.id, w.first_name, w.last_name, w.email, w.position, w.department_id,
		w.schedule_id, w.role, w.active, w.password_hash, w.created_at, w.updated_at, d.name`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(
		&w.ID, &w.FirstName, &w.LastName, &w.Email, &w.Position, &w.DepartmentID,
		&w.ScheduleID, &w.Role, &w.Active, &w.PasswordHash, &w.CreatedAt, &w.UpdatedAt,
		&w.DepartmentName,
	)
	return w, err
}

// Create implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workers (id, first_name, last_name, email, position, department_id, schedule_id, role, active, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, first_name, last_name, email, position, department_id,
			schedule_id, role, active, password_hash, created_at, updated_at, NULL::text
	`

	created, err := scanWorker(q.QueryRow(ctx, query,
		w.ID, w.FirstName, w.LastName, w.Email, w.Position, w.DepartmentID,
		w.ScheduleID, w.Role, w.Active, w.PasswordHash,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return worker.Worker{}, worker.ErrEmailExists
		}
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return created, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workerColumns + `
		FROM workers w
		LEFT JOIN departments d ON d.id = w.department_id
		WHERE w.id = $1
	`

	w, err := scanWorker(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker %s: %w", id, err)
	}

	return w, nil
}

// GetByEmail implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByEmail(ctx context.Context, email string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workerColumns + `
		FROM workers w
		LEFT JOIN departments d ON d.id = w.department_id
		WHERE LOWER(w.email) = LOWER($1)
	`

	w, err := scanWorker(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by email: %w", err)
	}

	return w, nil
}

// List implements worker.WorkerRepository.
func (r *workerRepositoryImpl) List(ctx context.Context, filter worker.WorkerFilter) ([]worker.Worker, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if filter.DepartmentID != nil {
		conditions = append(conditions, fmt.Sprintf("w.department_id = $%d", argPos))
		args = append(args, *filter.DepartmentID)
		argPos++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("w.active = $%d", argPos))
		args = append(args, *filter.Active)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM workers w WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count workers: %w", err)
	}

	query := `
		SELECT ` + workerColumns + `
		FROM workers w
		LEFT JOIN departments d ON d.id = w.department_id
		WHERE ` + where + `
		ORDER BY w.last_name, w.first_name
	`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, 0, err
		}
		workers = append(workers, w)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return workers, total, nil
}

// ListActive implements worker.WorkerRepository.
func (r *workerRepositoryImpl) ListActive(ctx context.Context, departmentID *string) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workerColumns + `
		FROM workers w
		LEFT JOIN departments d ON d.id = w.department_id
		WHERE w.active = TRUE
	`
	args := []any{}
	if departmentID != nil {
		query += " AND w.department_id = $1"
		args = append(args, *departmentID)
	}
	query += " ORDER BY w.last_name, w.first_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return workers, nil
}

// Update implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Update(ctx context.Context, w worker.Worker) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers
		SET first_name = $1, last_name = $2, email = $3, position = $4,
			department_id = $5, schedule_id = $6, role = $7, active = $8, updated_at = NOW()
		WHERE id = $9
	`

	tag, err := q.Exec(ctx, query,
		w.FirstName, w.LastName, w.Email, w.Position,
		w.DepartmentID, w.ScheduleID, w.Role, w.Active, w.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return worker.ErrEmailExists
		}
		return fmt.Errorf("failed to update worker %s: %w", w.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}

	return nil
}

// Deactivate implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE workers SET active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate worker %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}

	return nil
}

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) worker.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

// GetByID implements worker.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (worker.Department, error) {
	q := GetQuerier(ctx, r.db)

	var d worker.Department
	err := q.QueryRow(ctx, `SELECT id, name FROM departments WHERE id = $1`, id).Scan(&d.ID, &d.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Department{}, worker.ErrDepartmentNotFound
		}
		return worker.Department{}, fmt.Errorf("failed to get department %s: %w", id, err)
	}

	return d, nil
}

// List implements worker.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context) ([]worker.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []worker.Department
	for rows.Next() {
		var d worker.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}
