package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

// Clearance errors
var (
	ErrClearanceNotFound  = errors.New("clearance request not found")
	ErrDuplicateClearance = errors.New("clearance request already submitted for this month")
	ErrClearanceReviewed  = errors.New("clearance request already reviewed")
	ErrInvalidStatus      = errors.New("invalid clearance status")
)

// Assistant errors. The composer reports a closed set of degraded-service
// reasons; the boundary layer decides the user-facing text. Internal
// third-party failure detail never reaches the caller.
var (
	// ErrAssistantDisabled means no language-model provider initialized at
	// process start. Decided once, not per request.
	ErrAssistantDisabled = errors.New("assistant disabled: no model provider configured")

	// ErrModelFailure covers any failure while producing an answer with a
	// configured provider.
	ErrModelFailure = errors.New("model call failed")
)

// External service errors
var (
	ErrSearchDisabled = errors.New("web search disabled: no API key configured")
	ErrUploadFailed   = errors.New("file upload failed")
)
