package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Type categorizes an error for transport mapping and alerting.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeBusiness      Type = "BUSINESS"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeExternal      Type = "EXTERNAL"
	TypeInternal      Type = "INTERNAL"
)

// Code identifies a registered error within a registry.
type Code string

type definition struct {
	code       Code
	errType    Type
	httpStatus int
	message    string
}

// Registry holds the error definitions of one domain, namespaced by prefix.
type Registry struct {
	prefix      string
	definitions map[Code]definition
}

// NewRegistry creates a registry for a domain prefix (e.g. "MATCHING").
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix:      prefix,
		definitions: make(map[Code]definition),
	}
}

// Register adds an error definition and returns its code.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	c := Code(r.prefix + "." + code)
	r.definitions[c] = definition{
		code:       c,
		errType:    t,
		httpStatus: httpStatus,
		message:    message,
	}
	return c
}

// New creates an error from a registered code.
func (r *Registry) New(code Code) *Error {
	def, ok := r.definitions[code]
	if !ok {
		return &Error{
			Code:       Code(r.prefix + ".UNKNOWN"),
			Type:       TypeInternal,
			HTTPStatus: http.StatusInternalServerError,
			Message:    fmt.Sprintf("unregistered error code %q", code),
		}
	}
	return &Error{
		Code:       def.code,
		Type:       def.errType,
		HTTPStatus: def.httpStatus,
		Message:    def.message,
	}
}

// NewWithCause creates an error from a registered code wrapping an underlying cause.
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	e := r.New(code)
	e.Cause = cause
	return e
}

// Error is a structured error with a code, category and optional details.
type Error struct {
	Code       Code           `json:"code"`
	Type       Type           `json:"type"`
	HTTPStatus int            `json:"-"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a single key/value detail.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails attaches multiple details at once.
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// Wrap converts an arbitrary error into a typed *Error. If err is already an
// *Error it is returned unchanged so codes survive layer boundaries.
func Wrap(err error, message string, t Type) *Error {
	if err == nil {
		return nil
	}
	var ex *Error
	if errors.As(err, &ex) {
		return ex
	}
	return &Error{
		Code:       Code(string(t) + ".WRAPPED"),
		Type:       t,
		HTTPStatus: http.StatusInternalServerError,
		Message:    message,
		Cause:      err,
	}
}

// IsType reports whether err is an *Error of the given type.
func IsType(err error, t Type) bool {
	var ex *Error
	if errors.As(err, &ex) {
		return ex.Type == t
	}
	return false
}
