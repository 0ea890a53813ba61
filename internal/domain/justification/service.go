package justification

import "context"

// JustificationService overlays approved justifications onto attendance
// records and reverses the overlay on revocation.
type JustificationService interface {
	// Apply creates the justification and marks the day's entry record
	// JUSTIFIED, synthesizing a record when the day has none. Atomic.
	Apply(ctx context.Context, req ApplyJustificationRequest) (JustificationResponse, error)

	Get(ctx context.Context, id string) (JustificationResponse, error)
	List(ctx context.Context, filter JustificationFilter) (ListJustificationsResponse, error)

	// Revoke deletes the justification and restores the day's record to
	// the status classification would have produced without it:
	// synthesized records are removed, real check-ins are reclassified
	// from their stored timestamp.
	Revoke(ctx context.Context, id string) error

	ListReasonRules(ctx context.Context) ([]ReasonRuleResponse, error)
	CreateReasonRule(ctx context.Context, req ReasonRuleRequest) (ReasonRuleResponse, error)
	UpdateReasonRule(ctx context.Context, req ReasonRuleRequest) (ReasonRuleResponse, error)
	DeleteReasonRule(ctx context.Context, id string) error
}
