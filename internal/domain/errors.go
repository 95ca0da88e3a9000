package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// book does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, unknown status value).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")
