package instruction

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty         = errors.New("instruction: empty payload")
	ErrUnknownTag    = errors.New("instruction: unknown tag")
	ErrTrailingBytes = errors.New("instruction: trailing bytes after request")
	ErrFieldTooLarge = errors.New("instruction: byte field exceeds u32 length prefix")
	ErrNilRequest    = errors.New("instruction: nil request")
)

// TagError reports a payload whose first byte names no known variant.
type TagError struct {
	Tag uint8
}

func (e TagError) Error() string {
	return fmt.Sprintf("instruction: unknown tag %d", e.Tag)
}

func (e TagError) Unwrap() error {
	return ErrUnknownTag
}

// FieldError reports a request field that violates its wire contract.
type FieldError struct {
	Tag   Tag
	Field string
	Err   error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("instruction: %s.%s: %v", e.Tag, e.Field, e.Err)
}

func (e FieldError) Unwrap() error {
	return e.Err
}
