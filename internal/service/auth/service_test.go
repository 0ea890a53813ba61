package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/auth"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/worker"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/jwt"
)

type fakeWorkerRepo struct {
	workers map[string]worker.Worker
}

func (f *fakeWorkerRepo) Create(_ context.Context, w worker.Worker) (worker.Worker, error) {
	f.workers[w.Email] = w
	return w, nil
}

func (f *fakeWorkerRepo) GetByID(context.Context, string) (worker.Worker, error) {
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) GetByEmail(_ context.Context, email string) (worker.Worker, error) {
	w, ok := f.workers[email]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (f *fakeWorkerRepo) List(context.Context, worker.WorkerFilter) ([]worker.Worker, int64, error) {
	return nil, 0, nil
}

func (f *fakeWorkerRepo) ListActive(context.Context, *string) ([]worker.Worker, error) {
	return nil, nil
}

func (f *fakeWorkerRepo) Update(context.Context, worker.Worker) error { return nil }
func (f *fakeWorkerRepo) Deactivate(context.Context, string) error    { return nil }

func newService(t *testing.T, workers ...worker.Worker) auth.AuthService {
	t.Helper()
	repo := &fakeWorkerRepo{workers: map[string]worker.Worker{}}
	for _, w := range workers {
		repo.workers[w.Email] = w
	}
	return NewAuthService(jwt.NewJWTService("test-secret", "15m"), repo)
}

func hash(t *testing.T, password string) *string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(h)
	return &s
}

func TestLogin(t *testing.T) {
	active := worker.Worker{
		ID:           "w1",
		FirstName:    "Ana",
		LastName:     "Lopez",
		Email:        "ana@example.com",
		Role:         worker.RoleAdmin,
		Active:       true,
		PasswordHash: hash(t, "s3cret"),
	}

	t.Run("success", func(t *testing.T) {
		svc := newService(t, active)

		resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: "s3cret"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotZero(t, resp.ExpiresAt)
		assert.Equal(t, "w1", resp.WorkerID)
		assert.Equal(t, "admin", resp.Role)
		assert.Equal(t, "Ana Lopez", resp.FullName)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newService(t, active)

		_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		svc := newService(t)

		_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ghost@example.com", Password: "s3cret"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		inactive := active
		inactive.Active = false
		svc := newService(t, inactive)

		_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: "s3cret"})
		assert.ErrorIs(t, err, auth.ErrAccountInactive)
	})

	t.Run("no password set", func(t *testing.T) {
		noPassword := active
		noPassword.PasswordHash = nil
		svc := newService(t, noPassword)

		_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: "s3cret"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		svc := newService(t)

		_, err := svc.Login(context.Background(), auth.LoginRequest{})
		assert.Error(t, err)
	})
}
