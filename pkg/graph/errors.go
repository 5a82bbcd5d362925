package graph

import (
	"fmt"

	"github.com/pkg/errors"
)

//nolint:gochecknoglobals // Error sentinels
var (
	ErrInvalidNode   = errors.New("invalid node")
	ErrDuplicateNode = errors.New("duplicate node")
	ErrUnknownNode   = errors.New("unknown node")
	ErrUnknownLayout = errors.New("unknown layout")
	ErrUnknownKind   = errors.New("unknown graph kind")
)

// Error wraps a graph failure with its kind. Use errors.Is against the sentinels.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() (msg string) {
	if e == nil {
		return msg
	}
	if e.Msg == "" {
		msg = e.Kind.Error()
		return msg
	}
	msg = fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
	return msg
}

// Unwrap exposes Kind to errors.Is.
func (e *Error) Unwrap() (kind error) {
	kind = e.Kind
	return kind
}

func newError(kind error, format string, args ...interface{}) (err error) {
	err = &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
	return err
}
