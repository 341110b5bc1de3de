package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrNoCredential     = fmt.Errorf("no credential available")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrAuthFailed       = fmt.Errorf("authentication failed")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrUnexpectedStatus   = fmt.Errorf("unexpected response status")
	ErrMalformedResponse  = fmt.Errorf("malformed response payload")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Task errors
	ErrTaskNotFound = fmt.Errorf("task not found")
	ErrUserNotFound = fmt.Errorf("user not found")
	ErrEmptyText    = fmt.Errorf("task text is empty")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidFilter   = fmt.Errorf("invalid filter")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
