package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals an operation addressing a record id that no
	// longer exists
	ErrNotFound = errors.New("article not found")

	// ErrConflict signals a declined overwrite of a newer stored record
	// under the "ask" conflict policy
	ErrConflict = errors.New("a newer copy exists and the overwrite was declined")

	// ErrInvalidBackup signals a restore payload that does not match the
	// expected backup shape
	ErrInvalidBackup = errors.New("backup payload malformed")
)

// StorageError wraps a failure at the store boundary. Callers report it
// to the user and leave prior in-memory state intact.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates the validation errors for one record
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}
