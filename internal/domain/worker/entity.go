package worker

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
)

// Worker is an employee who clocks in and out. Workers are soft-deleted
// (Active=false) so historical attendance stays intact.
type Worker struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Position     string
	DepartmentID *string
	ScheduleID   *string
	Role         Role
	Active       bool
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	DepartmentName *string
}

// FullName is the display name used across reports.
func (w Worker) FullName() string {
	return w.FirstName + " " + w.LastName
}

type Department struct {
	ID   string
	Name string
}
