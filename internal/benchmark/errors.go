package benchmark

import "errors"

var (
	ErrUnknownTestType   = errors.New("unknown test type")
	ErrReportNotFound    = errors.New("benchmark report not found")
	ErrInvalidReportName = errors.New("invalid report name")
	ErrNoProviders       = errors.New("no providers to benchmark")
)
