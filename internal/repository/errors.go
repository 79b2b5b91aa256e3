// Package repository implements the data access layer on MySQL. Each
// repository is a thin struct over *sql.DB; multi-row mutations run in a
// single transaction. Sentinel errors let handlers map store outcomes to
// the API error taxonomy without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when a referenced id does not resolve.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert hits a unique constraint, such
// as registering a login method for an already registered key.
var ErrDuplicate = errors.New("duplicate entry")
