package sprite

import (
	"fmt"
)

// ErrorKind classifies sprite generation problems
type ErrorKind string

// Error kinds
const (
	KindNoSourceImages        ErrorKind = "no-source-images"
	KindWrongImageFormat      ErrorKind = "wrong-image-format"
	KindUnknownImageExtension ErrorKind = "unknown-image-ext"
	KindSpriteUpToDate        ErrorKind = "sprite-up-to-date"
	KindInvalidConfig         ErrorKind = "invalid-config"
	KindIO                    ErrorKind = "io"
)

// Error is a structured sprite error: {kind, message}
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Path    string    `json:"path,omitempty"`
	Err     error     `json:"-"`
}

// Sentinel errors, matched by kind with errors.Is
var (
	ErrNoSourceImages        = &Error{Kind: KindNoSourceImages, Message: "no source images found"}
	ErrUnknownImageExtension = &Error{Kind: KindUnknownImageExtension, Message: "unknown sprite image extension"}
	ErrSpriteUpToDate        = &Error{Kind: KindSpriteUpToDate, Message: "sprite is up to date"}
	ErrWrongImageFormat      = &Error{Kind: KindWrongImageFormat, Message: "wrong image format"}
)

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewError builds an *Error with a formatted message
func NewError(kind ErrorKind, path string, err error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
		Err:     err,
	}
}
