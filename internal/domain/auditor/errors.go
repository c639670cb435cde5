package auditor

import "errors"

var (
	ErrAuditorNotFound    = errors.New("auditor not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)
