package errors

import (
	stdErrors "errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrUnknownPlaceholder = stdErrors.New("unknown placeholder")
	ErrRenderFailed       = stdErrors.New("render failed")
	ErrWriteFailed        = stdErrors.New("write failed")
	ErrComponentNotFound  = stdErrors.New("component not found")
)

// ParseError represents a YAML or template parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration and descriptor validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UnknownPlaceholderError reports a token or override that has no matching placeholder spec.
type UnknownPlaceholderError struct {
	Component   string
	Placeholder string
}

// NewUnknownPlaceholderError constructs an UnknownPlaceholderError.
func NewUnknownPlaceholderError(component, placeholder string) error {
	return &UnknownPlaceholderError{Component: component, Placeholder: placeholder}
}

func (e *UnknownPlaceholderError) Error() string {
	if e == nil {
		return ""
	}
	if e.Component != "" {
		return fmt.Sprintf("unknown placeholder %q in component %s", e.Placeholder, e.Component)
	}
	return fmt.Sprintf("unknown placeholder %q", e.Placeholder)
}

// Is matches ErrUnknownPlaceholder.
func (e *UnknownPlaceholderError) Is(target error) bool {
	return target == ErrUnknownPlaceholder
}

// RenderError wraps a failure raised while rendering a component.
type RenderError struct {
	Component string
	Err       error
}

// NewRenderError constructs a RenderError.
func NewRenderError(component string, err error) error {
	return &RenderError{Component: component, Err: err}
}

func (e *RenderError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("render failed for component %s: %v", e.Component, e.Err)
}

// Unwrap exposes the underlying error.
func (e *RenderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches ErrRenderFailed.
func (e *RenderError) Is(target error) bool {
	return target == ErrRenderFailed
}

// WriteError wraps a filesystem failure while emitting the output tree.
type WriteError struct {
	Path string
	Err  error
}

// NewWriteError constructs a WriteError.
func NewWriteError(path string, err error) error {
	return &WriteError{Path: path, Err: err}
}

func (e *WriteError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("write failed for %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying error.
func (e *WriteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches ErrWriteFailed.
func (e *WriteError) Is(target error) bool {
	return target == ErrWriteFailed
}

// ComponentError attaches a component id to any failure raised while processing it.
type ComponentError struct {
	Component string
	Err       error
}

// NewComponentError constructs a ComponentError. A nil err yields nil.
func NewComponentError(component string, err error) error {
	if err == nil {
		return nil
	}
	return &ComponentError{Component: component, Err: err}
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("component %s: %v", e.Component, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AttachComponent records component on err. Unknown placeholder errors that
// do not name a component yet are filled in place; anything else is wrapped
// in a ComponentError unless it already identifies a component.
func AttachComponent(err error, component string) error {
	if err == nil {
		return nil
	}
	var unknownErr *UnknownPlaceholderError
	if stdErrors.As(err, &unknownErr) && unknownErr.Component == "" {
		unknownErr.Component = component
		return err
	}
	if ComponentID(err) != "" {
		return err
	}
	return &ComponentError{Component: component, Err: err}
}

// ComponentID extracts the component id carried by err, if any.
func ComponentID(err error) string {
	var componentErr *ComponentError
	if stdErrors.As(err, &componentErr) {
		return componentErr.Component
	}
	var unknownErr *UnknownPlaceholderError
	if stdErrors.As(err, &unknownErr) {
		return unknownErr.Component
	}
	var renderErr *RenderError
	if stdErrors.As(err, &renderErr) {
		return renderErr.Component
	}
	return ""
}
