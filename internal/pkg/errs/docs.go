// Package errs provides the error types shared by every layer of the service.
//
// Value errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
// ObjectNotFoundError, VersionIsInvalidError) describe bad input or missing rows.
// Each type unwraps to a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...), so
// callers match with errors.Is.
//
// RejectionError describes a refused logistics mutation and carries a Reason
// code (NOT_FOUND, INVALID_TRANSITION, INVALID_JUMP, ALREADY_SHIPPED, EMPTY_BOX,
// CONFLICT, STORE_FAILURE). ReasonOf maps any error to the code reported to
// dashboards.
package errs
