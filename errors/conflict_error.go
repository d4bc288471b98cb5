// errors/conflict_error.go
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrRequestConflict is the sentinel every interval conflict matches via
// errors.Is, regardless of which competitor produced it.
var ErrRequestConflict = errors.New("conflicting request exists")

// ConflictError names the live competing request that occupies the
// interval: its type, status and date range.
type ConflictError struct {
	CompetingType   string
	CompetingStatus string
	From            time.Time
	To              time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("employee has a %s %s from %s to %s",
		e.CompetingStatus, e.CompetingType,
		e.From.Format("2006-01-02"), e.To.Format("2006-01-02"))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrRequestConflict
}
