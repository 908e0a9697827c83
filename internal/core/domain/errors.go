package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the machine-checkable classification of a domain error
type ErrorKind string

const (
	KindValidation          ErrorKind = "VALIDATION"
	KindDuplicate           ErrorKind = "DUPLICATE"
	KindOverpayment         ErrorKind = "OVERPAYMENT"
	KindReferentialConflict ErrorKind = "REFERENTIAL_CONFLICT"
	KindStoreUnavailable    ErrorKind = "STORE_UNAVAILABLE"
	KindNotFound            ErrorKind = "NOT_FOUND"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrDueNotFound        = errors.New("due not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
)

// ValidationError reports malformed input. It is raised before any store
// access is attempted and is always recoverable by the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Kind returns the error kind
func (e *ValidationError) Kind() ErrorKind { return KindValidation }

// DuplicateError reports a uniqueness violation, carrying the conflicting value
type DuplicateError struct {
	Entity string // "due" or "user"
	Value  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.Value)
}

// Kind returns the error kind
func (e *DuplicateError) Kind() ErrorKind { return KindDuplicate }

// OverpaymentError reports a payment that exceeds the remaining balance.
// The recorder never clamps or splits; the caller decides what to do.
type OverpaymentError struct {
	Attempted int64
	Remaining int64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %d exceeds remaining balance of %d", e.Attempted, e.Remaining)
}

// Kind returns the error kind
func (e *OverpaymentError) Kind() ErrorKind { return KindOverpayment }

// ReferentialConflictError reports a delete blocked by dependent transactions.
// The caller decides cascade vs abort; the core never auto-resolves it.
type ReferentialConflictError struct {
	Entity       string
	ID           uint
	Transactions int64
}

func (e *ReferentialConflictError) Error() string {
	return fmt.Sprintf("%s %d has %d dependent transactions", e.Entity, e.ID, e.Transactions)
}

// Kind returns the error kind
func (e *ReferentialConflictError) Kind() ErrorKind { return KindReferentialConflict }

// StoreUnavailableError wraps a connectivity or timeout failure from the
// ledger store. Never retried by the core.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("ledger store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// Kind returns the error kind
func (e *StoreUnavailableError) Kind() ErrorKind { return KindStoreUnavailable }
