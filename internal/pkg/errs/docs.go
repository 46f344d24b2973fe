// Package errs provides standardized error types for the ordering service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for common failure scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: an order, menu or print job does not exist
//   - UnprocessableError: a request contradicts the menu snapshot (unknown items, price tampering)
//   - ObjectIsGoneError: a referenced menu item exists but is no longer available
//   - UnauthorizedError: a payment callback failed its provider authenticity check
//   - ConflictError: a conditional write lost a race against another writer
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so callers classify with errors.Is
//
// The HTTP adapter maps each sentinel to a status code; nothing below the adapter
// layer knows about HTTP.
package errs
