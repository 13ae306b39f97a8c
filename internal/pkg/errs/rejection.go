package errs

import (
	"errors"
	"fmt"
)

// Reason is the machine-readable code attached to a rejected mutation.
type Reason string

const (
	ReasonNotFound          Reason = "NOT_FOUND"
	ReasonInvalidTransition Reason = "INVALID_TRANSITION"
	ReasonInvalidJump       Reason = "INVALID_JUMP"
	ReasonAlreadyShipped    Reason = "ALREADY_SHIPPED"
	ReasonEmptyBox          Reason = "EMPTY_BOX"
	ReasonConflict          Reason = "CONFLICT"
	ReasonInvalidInput      Reason = "INVALID_INPUT"
	ReasonStoreFailure      Reason = "STORE_FAILURE"
)

var (
	ErrInvalidTransition = errors.New("transition is not allowed")
	ErrAlreadyShipped    = errors.New("already shipped")
	ErrEmptyBox          = errors.New("box has no orders")
	ErrConflict          = errors.New("concurrent modification")
	ErrStoreFailure      = errors.New("store failure")
)

// RejectionError is returned when a mutation is refused. Nothing has been
// written when a RejectionError is returned.
type RejectionError struct {
	Reason Reason
	Entity string
	ID     any
	Detail string
	Cause  error
}

func NewInvalidTransitionError(entity string, id any, detail string) *RejectionError {
	return &RejectionError{Reason: ReasonInvalidTransition, Entity: entity, ID: id, Detail: detail}
}

func NewInvalidJumpError(entity string, id any, detail string) *RejectionError {
	return &RejectionError{Reason: ReasonInvalidJump, Entity: entity, ID: id, Detail: detail}
}

func NewAlreadyShippedError(entity string, id any, detail string) *RejectionError {
	return &RejectionError{Reason: ReasonAlreadyShipped, Entity: entity, ID: id, Detail: detail}
}

func NewEmptyBoxError(id any) *RejectionError {
	return &RejectionError{Reason: ReasonEmptyBox, Entity: "box", ID: id, Detail: "no orders reference the box"}
}

func NewConflictError(entity string, id any) *RejectionError {
	return &RejectionError{
		Reason: ReasonConflict,
		Entity: entity,
		ID:     id,
		Detail: "row was modified by another operation",
	}
}

func NewStoreFailureError(cause error) *RejectionError {
	return &RejectionError{Reason: ReasonStoreFailure, Detail: "store operation failed", Cause: cause}
}

func (e *RejectionError) Error() string {
	msg := string(e.Reason)
	if e.Entity != "" {
		msg = fmt.Sprintf("%s: %s %v", msg, e.Entity, e.ID)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *RejectionError) Unwrap() []error {
	var sentinel error
	switch e.Reason {
	case ReasonNotFound:
		sentinel = ErrObjectNotFound
	case ReasonInvalidTransition, ReasonInvalidJump:
		sentinel = ErrInvalidTransition
	case ReasonAlreadyShipped:
		sentinel = ErrAlreadyShipped
	case ReasonEmptyBox:
		sentinel = ErrEmptyBox
	case ReasonConflict:
		sentinel = ErrConflict
	case ReasonInvalidInput:
		sentinel = ErrValueIsInvalid
	case ReasonStoreFailure:
		sentinel = ErrStoreFailure
	}

	if e.Cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Cause}
}

// ReasonOf classifies err into a rejection reason. Errors that carry no
// domain meaning are treated as store failures.
func ReasonOf(err error) Reason {
	if err == nil {
		return ""
	}

	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection.Reason
	}

	switch {
	case errors.Is(err, ErrObjectNotFound):
		return ReasonNotFound
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return ReasonInvalidInput
	case errors.Is(err, ErrVersionIsInvalid):
		return ReasonConflict
	default:
		return ReasonStoreFailure
	}
}
