package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter ErrorCode = 100
	ErrCodeInvalidCandle    ErrorCode = 101
	ErrCodeInvalidPeriod    ErrorCode = 102
	ErrCodeInvalidRiskInput ErrorCode = 103
	ErrCodeInsufficientData ErrorCode = 104
	ErrCodeInvalidTimeOrder ErrorCode = 105
	ErrCodeInvalidThreshold ErrorCode = 106
	ErrCodeMissingParameter ErrorCode = 107

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound   ErrorCode = 200
	ErrCodeDataLoadFailed ErrorCode = 201
	ErrCodeDataParse      ErrorCode = 202

	// Backtest errors (600-699)
	ErrCodeBacktestConfigError ErrorCode = 600
	ErrCodeBacktestInitFailed  ErrorCode = 601
	ErrCodeReportWriteFailed   ErrorCode = 602
)
