// errors/request_errors.go
package errors

import "errors"

var (
	ErrRequestNotFound    = errors.New("request not found")
	ErrInvalidRequestData = errors.New("invalid request data")

	// ErrRequestTerminal marks an action attempted on a request whose
	// workflow has already ended.
	ErrRequestTerminal = errors.New("request already processed")
	// ErrStaleWorkflowState is the optimistic-concurrency race loss: the
	// current step changed between read and write. The caller re-fetches.
	ErrStaleWorkflowState = errors.New("workflow state changed since read")
	ErrNoActiveStep       = errors.New("no active approval step")
	ErrInvalidAction      = errors.New("invalid workflow action")
	ErrCancelNotAllowed   = errors.New("request cannot be cancelled in current status")

	ErrRevocationWindowExpired = errors.New("revocation window expired")
	ErrNoApprovalToRevoke      = errors.New("no recorded approval to revoke")

	ErrEmployeeNotFound   = errors.New("employee record not found")
	ErrAttendanceRequired = errors.New("attendance with in-time is required")

	ErrDatabaseOperation = errors.New("database operation failed")
	ErrInternalServer    = errors.New("internal server error")
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)
