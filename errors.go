package surrealkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes when mapping records and running
// statements. Use the Is*Err helpers to check for them; they see through
// wrapping.
var (
	// ErrIDEmpty is returned when an operation needs a record id and the
	// record has none.
	ErrIDEmpty = errors.New("surrealkit: id of table is empty")

	// ErrEmptyTable is returned when a type reports an empty table name.
	ErrEmptyTable = errors.New("surrealkit: table name is empty")

	// ErrInvalidTableName is returned when a table name starts with a
	// non-letter or contains characters other than letters, digits and '_'.
	ErrInvalidTableName = errors.New("surrealkit: invalid table name")

	// ErrFieldDoesNotExist is returned when a field name is not part of a
	// table's declared fields.
	ErrFieldDoesNotExist = errors.New("surrealkit: field does not exist")

	// ErrTableNameMismatch is returned when a record id points at a table
	// other than the one being queried.
	ErrTableNameMismatch = errors.New("surrealkit: table does not match name")

	// ErrNoResult is returned when a statement result index is out of range.
	ErrNoResult = errors.New("surrealkit: no result for statement")

	// ErrStatement is wrapped by StatementError.
	ErrStatement = errors.New("surrealkit: statement failed")
)

// StatementError reports a statement that the database rejected.
type StatementError struct {
	Index   int
	Status  string
	Message string
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("surrealkit: statement %d failed (%s): %s", e.Index, e.Status, e.Message)
}

// Unwrap allows errors.Is(err, ErrStatement).
func (e *StatementError) Unwrap() error {
	return ErrStatement
}

// IsIDEmptyErr returns true if err is or wraps ErrIDEmpty.
func IsIDEmptyErr(err error) bool {
	return errors.Is(err, ErrIDEmpty)
}

// IsEmptyTableErr returns true if err is or wraps ErrEmptyTable.
func IsEmptyTableErr(err error) bool {
	return errors.Is(err, ErrEmptyTable)
}

// IsInvalidTableNameErr returns true if err is or wraps ErrInvalidTableName.
func IsInvalidTableNameErr(err error) bool {
	return errors.Is(err, ErrInvalidTableName)
}

// IsFieldDoesNotExistErr returns true if err is or wraps ErrFieldDoesNotExist.
func IsFieldDoesNotExistErr(err error) bool {
	return errors.Is(err, ErrFieldDoesNotExist)
}

// IsTableNameMismatchErr returns true if err is or wraps ErrTableNameMismatch.
func IsTableNameMismatchErr(err error) bool {
	return errors.Is(err, ErrTableNameMismatch)
}

// IsNoResultErr returns true if err is or wraps ErrNoResult.
func IsNoResultErr(err error) bool {
	return errors.Is(err, ErrNoResult)
}

// IsStatementErr returns true if err is or wraps ErrStatement.
func IsStatementErr(err error) bool {
	return errors.Is(err, ErrStatement)
}
