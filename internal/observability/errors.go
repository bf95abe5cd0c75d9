package observability

import "github.com/uakotik/DB-lab5/internal/types"

// Observability error codes.
const (
	ErrCodeInvalidConfig      types.ErrorCode = "OBSERVABILITY_INVALID_CONFIG"
	ErrCodeExporterConnection types.ErrorCode = "OBSERVABILITY_EXPORTER_CONNECTION"
	ErrCodeLogOutput          types.ErrorCode = "OBSERVABILITY_LOG_OUTPUT"
	ErrCodeShutdown           types.ErrorCode = "OBSERVABILITY_SHUTDOWN"
)

// newExporterConnectionError returns a retryable exporter failure.
func newExporterConnectionError(endpoint string, cause error) *types.Error {
	return &types.Error{
		Code:      ErrCodeExporterConnection,
		Message:   "failed to connect to exporter at " + endpoint,
		Retryable: true,
		Cause:     cause,
	}
}
