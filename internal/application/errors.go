package application

import (
	"fmt"

	"github.com/oksasatya/go-lead-crm/internal/domain/repository"
)

// Validation messages returned to clients.
const (
	MsgNameRequired  = "name required"
	MsgEmailRequired = "valid email required"
	MsgInvalidSource = "invalid source"
)

// ErrLeadNotFound is returned by GetLead for unknown ids.
var ErrLeadNotFound = repository.ErrLeadNotFound

// ValidationError means the client payload was rejected before anything was stored.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// StoreError wraps a persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("lead store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
