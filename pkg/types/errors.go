package types

import (
	"errors"
	"fmt"
)

// Property access errors.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrAccessDenied       = errors.New("access denied: property store is read-only")
	ErrAlreadyInitialized = errors.New("object is already initialized")
	ErrStreamUnreadable   = errors.New("stream cannot be read")
)

// Object construction and dispatch errors.
var (
	ErrNoInterface       = errors.New("no such interface supported")
	ErrNoAggregation     = errors.New("class does not support aggregation")
	ErrClassNotAvailable = errors.New("class not available")
)

// Registration errors.
var (
	ErrRegistration = errors.New("registration failed")
	ErrKeyNotFound  = errors.New("registry key not found")
	ErrValueType    = errors.New("registry value has a different type")
)

// Registry store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("registry store is detached")
	ErrAlreadyAttached = errors.New("registry store is already attached")
)

// RegistrationError reports a failed registry write or removal.
// It matches ErrRegistration with errors.Is.
type RegistrationError struct {
	Op   string // "create", "set", "delete"
	Path string
	Err  error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

func (e *RegistrationError) Is(target error) bool {
	return target == ErrRegistration
}
