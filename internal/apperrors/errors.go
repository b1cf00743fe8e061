package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInternal indicates an unexpected failure that the client cannot fix.
var ErrInternal = errors.New("internal error")

// ErrEmptyDocument indicates an uploaded statement file with no data rows.
var ErrEmptyDocument = errors.New("no data found in file")

// ErrInvalidDocument indicates an uploaded file that cannot be parsed as tabular data.
var ErrInvalidDocument = errors.New("file could not be parsed as tabular data")

// ErrInvalidStatementDate indicates that the statement date could not be
// derived from the first row of the uploaded file.
var ErrInvalidStatementDate = errors.New("statement date could not be parsed from first row")

// ErrAlreadyAssigned indicates a grab attempt on a transaction that another
// user already claimed. Kept distinct from ErrNotFound so clients can render
// "someone else grabbed it" instead of "it vanished".
var ErrAlreadyAssigned = errors.New("transaction is already assigned")

// ErrNotAssignee indicates that the caller is not the current assignee of the
// transaction being edited or completed.
var ErrNotAssignee = errors.New("caller is not the current assignee")

// ErrInvalidTransition indicates a lifecycle operation that is not legal from
// the transaction's current status.
var ErrInvalidTransition = errors.New("invalid transaction status transition")

// ErrMissingParameter indicates a required query parameter was absent.
var ErrMissingParameter = errors.New("required parameter is missing")
