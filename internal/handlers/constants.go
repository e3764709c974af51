package handlers

const (
	RequestIDHeader = "X-Request-ID"

	ErrInvalidJSON         = "Invalid JSON body"
	ErrInvalidQuery        = "Invalid query parameter"
	ErrNotFound            = "Not found"
	ErrConflict            = "The progression changed, please retry"
	ErrInternalServerError = "Internal server error"

	maxBodyBytes = 1 << 20
)
