package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/database"
)

type recordRepositoryImpl struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) attendance.RecordRepository {
	return &recordRepositoryImpl{db: db}
}

const recordColumns = `r.id, r.worker_id, r.timestamp, r.status, r.source, r.created_at, r.updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(&rec.ID, &rec.WorkerID, &rec.Timestamp, &rec.Status, &rec.Source, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

// Create implements attendance.RecordRepository.
func (r *recordRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (id, worker_id, timestamp, status, source)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, worker_id, timestamp, status, source, created_at, updated_at
	`

	created, err := scanRecord(q.QueryRow(ctx, query,
		record.ID, record.WorkerID, record.Timestamp, record.Status, record.Source,
	))
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return created, nil
}

// GetByID implements attendance.RecordRepository.
func (r *recordRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `, w.first_name || ' ' || w.last_name
		FROM attendance_records r
		JOIN workers w ON w.id = r.worker_id
		WHERE r.id = $1
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.WorkerID, &rec.Timestamp, &rec.Status, &rec.Source,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.WorkerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record %s: %w", id, err)
	}

	return rec, nil
}

// ListByWorkerAndDay implements attendance.RecordRepository.
func (r *recordRepositoryImpl) ListByWorkerAndDay(ctx context.Context, workerID string, day time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records r
		WHERE r.worker_id = $1 AND r.timestamp::date = $2::date
		ORDER BY r.timestamp ASC
	`

	rows, err := q.Query(ctx, query, workerID, day.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list records for worker %s: %w", workerID, err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ListByWorkerBetween implements attendance.RecordRepository.
func (r *recordRepositoryImpl) ListByWorkerBetween(ctx context.Context, workerID string, start, end time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records r
		WHERE r.worker_id = $1 AND r.timestamp::date BETWEEN $2::date AND $3::date
		ORDER BY r.timestamp ASC
	`

	rows, err := q.Query(ctx, query, workerID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list records for worker %s: %w", workerID, err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ListByDay implements attendance.RecordRepository.
func (r *recordRepositoryImpl) ListByDay(ctx context.Context, day time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `, w.first_name || ' ' || w.last_name
		FROM attendance_records r
		JOIN workers w ON w.id = r.worker_id
		WHERE r.timestamp::date = $1::date
		ORDER BY r.worker_id, r.timestamp ASC
	`

	rows, err := q.Query(ctx, query, day.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list records for day: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.WorkerID, &rec.Timestamp, &rec.Status, &rec.Source,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.WorkerName,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// List implements attendance.RecordRepository.
func (r *recordRepositoryImpl) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if filter.WorkerID != nil {
		conditions = append(conditions, fmt.Sprintf("r.worker_id = $%d", argPos))
		args = append(args, *filter.WorkerID)
		argPos++
	}
	if filter.DepartmentID != nil {
		conditions = append(conditions, fmt.Sprintf("w.department_id = $%d", argPos))
		args = append(args, *filter.DepartmentID)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("r.timestamp::date >= $%d::date", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("r.timestamp::date <= $%d::date", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM attendance_records r
		JOIN workers w ON w.id = r.worker_id
		WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := `
		SELECT ` + recordColumns + `, w.first_name || ' ' || w.last_name
		FROM attendance_records r
		JOIN workers w ON w.id = r.worker_id
		WHERE ` + where + `
		ORDER BY r.timestamp DESC
	`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.WorkerID, &rec.Timestamp, &rec.Status, &rec.Source,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.WorkerName,
		); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// Update implements attendance.RecordRepository.
func (r *recordRepositoryImpl) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET timestamp = $1, status = $2, source = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, record.Timestamp, record.Status, record.Source, record.ID)
	if err != nil {
		return fmt.Errorf("failed to update attendance record %s: %w", record.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// Delete implements attendance.RecordRepository.
func (r *recordRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// LockWorkerDay implements attendance.RecordRepository.
func (r *recordRepositoryImpl) LockWorkerDay(ctx context.Context, workerID string, day time.Time) error {
	q := GetQuerier(ctx, r.db)

	key := workerID + ":" + day.Format("2006-01-02")
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("failed to acquire worker-day lock: %w", err)
	}

	return nil
}

func collectRecords(rows pgx.Rows) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
