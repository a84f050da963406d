package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldBackend   = "backend"
	FieldPath      = "path"
	FieldID        = "id"
	FieldCategory  = "category"
	FieldMonth     = "month"
	FieldCount     = "count"
	FieldError     = "error"
)
