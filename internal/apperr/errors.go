package apperr

import "errors"

// Unauthorized is returned when a request carries no usable identity
// (missing, malformed, expired or badly signed token).
var Unauthorized = errors.New("unauthorized")

// Forbidden indicates the caller's identity is valid but its role or
// ownership does not permit the operation.
var Forbidden = errors.New("forbidden")

// NotFound indicates that the requested document does not exist.
var NotFound = errors.New("not found")

// Invalid is returned when the input fails domain validation, including
// malformed object ids and rejected booking-status transitions.
var Invalid = errors.New("invalid input")

// Conflict indicates a uniqueness or state conflict, such as signing up
// an email that already has an account.
var Conflict = errors.New("conflict")
