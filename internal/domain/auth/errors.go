package auth

import "errors"

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrEmployeeIDTaken     = errors.New("employee id already assigned")
	ErrEmployeeIDExhausted = errors.New("could not allocate a unique employee id")
	ErrInvalidCredentials  = errors.New("invalid employee id or password")
	ErrWeakPassword        = errors.New("password must be at least 8 characters and include upper and lower case letters, a digit and one of @$!%*?&")
	ErrInvalidRole         = errors.New("role must be HR or Employee")
	ErrRoleNotAllowed      = errors.New("only HR can create HR accounts")
	ErrAccountNotFound     = errors.New("account not found")
	ErrSessionInvalid      = errors.New("session expired or revoked")
)
