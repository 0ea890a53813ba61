package attendance

import "context"

// AttendanceService classifies clock events and manages the tolerance rule
// table.
type AttendanceService interface {
	// CheckIn classifies and persists one clock event. It decides entry
	// versus exit from the day's prior records, applies the worker's
	// schedule and the tolerance rules, and never fails a check-in on
	// malformed configuration data (it degrades to ON_TIME and logs).
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)
	Today(ctx context.Context) (TodayResponse, error)

	// UpdateRecord applies an administrative correction.
	UpdateRecord(ctx context.Context, req UpdateRecordRequest) (RecordResponse, error)
	DeleteRecord(ctx context.Context, id string) error

	ListToleranceRules(ctx context.Context) ([]ToleranceRuleResponse, error)
	CreateToleranceRule(ctx context.Context, req ToleranceRuleRequest) (ToleranceRuleResponse, error)
	UpdateToleranceRule(ctx context.Context, req ToleranceRuleRequest) (ToleranceRuleResponse, error)
	DeleteToleranceRule(ctx context.Context, id string) error
}
