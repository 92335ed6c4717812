package logging

import "log/slog"

// Common field names for consistent logging across the service.
const (
	FieldService     = "service"
	FieldIP          = "ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldEventID     = "event_id"
	FieldEventType   = "event_type"
	FieldContentType = "content_type"
	FieldBlob        = "blob"
	FieldContainer   = "container"
	FieldSubject     = "subject"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// IP returns a slog attribute for the client IP address.
func IP(ip string) slog.Attr {
	return slog.String(FieldIP, ip)
}

// Method returns a slog attribute for the HTTP method.
func Method(method string) slog.Attr {
	return slog.String(FieldMethod, method)
}

// Path returns a slog attribute for the HTTP path.
func Path(path string) slog.Attr {
	return slog.String(FieldPath, path)
}

// Status returns a slog attribute for the HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(FieldStatus, code)
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}

// EventID returns a slog attribute for an event ID.
func EventID(id string) slog.Attr {
	return slog.String(FieldEventID, id)
}

// EventType returns a slog attribute for an event type.
func EventType(t string) slog.Attr {
	return slog.String(FieldEventType, t)
}

// ContentType returns a slog attribute for a blob content type.
func ContentType(ct string) slog.Attr {
	return slog.String(FieldContentType, ct)
}

// Blob returns a slog attribute for a blob name.
func Blob(name string) slog.Attr {
	return slog.String(FieldBlob, name)
}

// Container returns a slog attribute for a storage container name.
func Container(name string) slog.Attr {
	return slog.String(FieldContainer, name)
}

// Subject returns a slog attribute for an event subject.
func Subject(s string) slog.Attr {
	return slog.String(FieldSubject, s)
}
