package justification

import "errors"

var (
	ErrJustificationNotFound  = errors.New("justification not found")
	ErrDuplicateJustification = errors.New("a justification already exists for this worker and date")

	ErrReasonRuleNotFound = errors.New("justification reason rule not found")
	ErrReasonRuleInUse    = errors.New("justification reason rule is referenced by justifications")
)
