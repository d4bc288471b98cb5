// errors/access_errors.go
package errors

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	// ErrOutOfJurisdiction means the actor's role was acceptable but the
	// target employee sits outside the actor's organizational scope.
	ErrOutOfJurisdiction = errors.New("target outside actor jurisdiction")
	ErrRoleMismatch      = errors.New("actor role does not match required step role")
	ErrUserNotFound      = errors.New("user record not found")
)
