// Package repository defines the store-backed collections and the sentinel
// error values shared across them.  Handlers translate these sentinels into
// the stable machine-readable error kinds of the HTTP surface: ErrForbidden
// becomes 403, ErrNotFound becomes 404, ErrEmailExists drives the
// soft-success path of registration.
package repository

import "errors"

// ErrNotFound is returned when a referenced entity is absent.  Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource scoped to someone else's identity.  Handlers should translate
// this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned by user creation when the email is already
// registered.  Per the registration contract this is a soft success, not a
// failure: the handler answers with an informational message and performs
// no second insert.
var ErrEmailExists = errors.New("email already exists")

// ErrConflict is returned when an operation cannot proceed due to
// conflicting existing state.
var ErrConflict = errors.New("conflict")
