package worker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/schedule"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/worker"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/database"
	"github.com/timecheck-hr/attendance-backend-go/internal/repository/postgresql"
)

type WorkerServiceImpl struct {
	db  *database.DB
	loc *time.Location
	worker.WorkerRepository
	worker.DepartmentRepository
	schedule.ScheduleRepository
	schedule.AssignmentRepository
}

func NewWorkerService(
	db *database.DB,
	loc *time.Location,
	workerRepo worker.WorkerRepository,
	departmentRepo worker.DepartmentRepository,
	scheduleRepo schedule.ScheduleRepository,
	assignmentRepo schedule.AssignmentRepository,
) worker.WorkerService {
	return &WorkerServiceImpl{
		db:                   db,
		loc:                  loc,
		WorkerRepository:     workerRepo,
		DepartmentRepository: departmentRepo,
		ScheduleRepository:   scheduleRepo,
		AssignmentRepository: assignmentRepo,
	}
}

// CreateWorker implements worker.WorkerService.
func (s *WorkerServiceImpl) CreateWorker(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	if req.DepartmentID != nil {
		if _, err := s.DepartmentRepository.GetByID(ctx, *req.DepartmentID); err != nil {
			return worker.WorkerResponse{}, err
		}
	}
	if req.ScheduleID != nil {
		if _, err := s.ScheduleRepository.GetByID(ctx, *req.ScheduleID); err != nil {
			return worker.WorkerResponse{}, err
		}
	}

	if _, err := s.WorkerRepository.GetByEmail(ctx, req.Email); err == nil {
		return worker.WorkerResponse{}, worker.ErrEmailExists
	} else if !errors.Is(err, worker.ErrWorkerNotFound) {
		return worker.WorkerResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to generate worker id: %w", err)
	}

	role := worker.RoleWorker
	if req.Role != "" {
		role = worker.Role(req.Role)
	}

	w := worker.Worker{
		ID:           id.String(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Position:     req.Position,
		DepartmentID: req.DepartmentID,
		ScheduleID:   req.ScheduleID,
		Role:         role,
		Active:       true,
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return worker.WorkerResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hashStr := string(hash)
		w.PasswordHash = &hashStr
	}

	var created worker.Worker
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.WorkerRepository.Create(txCtx, w)
		if err != nil {
			return err
		}
		if w.ScheduleID != nil {
			_, err = s.AssignmentRepository.Create(txCtx, created.ID, *w.ScheduleID, time.Now().In(s.loc))
		}
		return err
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return toResponse(created), nil
}

// GetWorker implements worker.WorkerService.
func (s *WorkerServiceImpl) GetWorker(ctx context.Context, id string) (worker.WorkerResponse, error) {
	w, err := s.WorkerRepository.GetByID(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return toResponse(w), nil
}

// ListWorkers implements worker.WorkerService.
func (s *WorkerServiceImpl) ListWorkers(ctx context.Context, filter worker.WorkerFilter) (worker.ListWorkersResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	workers, total, err := s.WorkerRepository.List(ctx, filter)
	if err != nil {
		return worker.ListWorkersResponse{}, err
	}

	resp := worker.ListWorkersResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Workers:    make([]worker.WorkerResponse, 0, len(workers)),
	}
	for _, w := range workers {
		resp.Workers = append(resp.Workers, toResponse(w))
	}

	return resp, nil
}

// UpdateWorker implements worker.WorkerService.
func (s *WorkerServiceImpl) UpdateWorker(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	w, err := s.WorkerRepository.GetByID(ctx, req.ID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	scheduleChanged := false
	if req.FirstName != nil {
		w.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		w.LastName = *req.LastName
	}
	if req.Email != nil {
		w.Email = *req.Email
	}
	if req.Position != nil {
		w.Position = *req.Position
	}
	if req.DepartmentID != nil {
		if _, err := s.DepartmentRepository.GetByID(ctx, *req.DepartmentID); err != nil {
			return worker.WorkerResponse{}, err
		}
		w.DepartmentID = req.DepartmentID
	}
	if req.ScheduleID != nil && (w.ScheduleID == nil || *w.ScheduleID != *req.ScheduleID) {
		if _, err := s.ScheduleRepository.GetByID(ctx, *req.ScheduleID); err != nil {
			return worker.WorkerResponse{}, err
		}
		w.ScheduleID = req.ScheduleID
		scheduleChanged = true
	}
	if req.Active != nil {
		w.Active = *req.Active
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.WorkerRepository.Update(txCtx, w); err != nil {
			return err
		}
		if scheduleChanged {
			_, err := s.AssignmentRepository.Create(txCtx, w.ID, *w.ScheduleID, time.Now().In(s.loc))
			return err
		}
		return nil
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return toResponse(w), nil
}

// DeactivateWorker implements worker.WorkerService.
func (s *WorkerServiceImpl) DeactivateWorker(ctx context.Context, id string) error {
	return s.WorkerRepository.Deactivate(ctx, id)
}

// ListDepartments implements worker.WorkerService.
func (s *WorkerServiceImpl) ListDepartments(ctx context.Context) ([]worker.DepartmentResponse, error) {
	departments, err := s.DepartmentRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]worker.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		resp = append(resp, worker.DepartmentResponse{ID: d.ID, Name: d.Name})
	}

	return resp, nil
}

func toResponse(w worker.Worker) worker.WorkerResponse {
	return worker.WorkerResponse{
		ID:             w.ID,
		FirstName:      w.FirstName,
		LastName:       w.LastName,
		Email:          w.Email,
		Position:       w.Position,
		DepartmentID:   w.DepartmentID,
		DepartmentName: w.DepartmentName,
		ScheduleID:     w.ScheduleID,
		Role:           string(w.Role),
		Active:         w.Active,
	}
}
