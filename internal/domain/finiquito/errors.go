package finiquito

import "errors"

var (
	// ErrInvalidRange means the termination date precedes the start date once
	// the día-menos adjustment is applied. Never clamped to zero tenure.
	ErrInvalidRange = errors.New("termination date precedes start date")

	// ErrInsufficientData means the salary average was asked for with other
	// than the required number of payroll months. Returning a zero average
	// instead would silently zero every benefit downstream, so this is loud.
	ErrInsufficientData = errors.New("salary average requires exactly three payroll months")

	ErrCaseNotFound   = errors.New("finiquito case not found")
	ErrMotivoNotFound = errors.New("motivo retiro configuration not found")
	ErrResultNotFound = errors.New("calculation result not found")
)
