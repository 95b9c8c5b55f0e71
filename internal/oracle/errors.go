package oracle

import "errors"

// Oracle client errors
var (
	ErrOracleUnavailable = errors.New("simulation oracle unavailable")
	ErrBatchRejected     = errors.New("simulation batch rejected by oracle")
	ErrEmptyBatch        = errors.New("simulation batch is empty")
	ErrResultMismatch    = errors.New("oracle response does not correlate with submitted configs")
	ErrStreamClosed      = errors.New("progress stream closed")
)
