package cssprite

import "github.com/yacobolo/cssprite/internal/sprite"

// Error is a structured sprite error: {kind, message}
type Error = sprite.Error

// ErrorKind classifies errors
type ErrorKind = sprite.ErrorKind

// Error kinds
const (
	KindNoSourceImages        = sprite.KindNoSourceImages
	KindWrongImageFormat      = sprite.KindWrongImageFormat
	KindUnknownImageExtension = sprite.KindUnknownImageExtension
	KindSpriteUpToDate        = sprite.KindSpriteUpToDate
	KindInvalidConfig         = sprite.KindInvalidConfig
	KindIO                    = sprite.KindIO
)

// Sentinel errors, matched by kind with errors.Is
var (
	ErrNoSourceImages        = sprite.ErrNoSourceImages
	ErrUnknownImageExtension = sprite.ErrUnknownImageExtension
	ErrSpriteUpToDate        = sprite.ErrSpriteUpToDate
	ErrWrongImageFormat      = sprite.ErrWrongImageFormat
	ErrInvalidConfig         = &Error{Kind: KindInvalidConfig, Message: "invalid configuration"}
)

func configError(format string, args ...any) *Error {
	return sprite.NewError(KindInvalidConfig, "", nil, format, args...)
}
