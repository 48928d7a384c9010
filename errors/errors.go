package errors

import "fmt"

var (
	ErrWorkerPanic         = fmt.Errorf("worker panic")
	ErrUnknownTool         = fmt.Errorf("unknown tool")
	ErrToolExecutionFailed = fmt.Errorf("tool execution failed")
	ErrMissingAPIKey       = fmt.Errorf("OPENROUTER_API_KEY is not set")
	ErrEmptyWords          = fmt.Errorf("no words have been found")
	ErrAuditWriteFailed    = fmt.Errorf("audit log write failed")
	ErrBatchAbandoned      = fmt.Errorf("approval batch abandoned")
)
