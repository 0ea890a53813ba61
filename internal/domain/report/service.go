package report

import "context"

type ReportService interface {
	Daily(ctx context.Context, date string, departmentID *string) (DailyReport, error)
	Monthly(ctx context.Context, req MonthlyRequest) (MonthlyReport, error)
	Range(ctx context.Context, req RangeRequest) (RangeReport, error)
}
