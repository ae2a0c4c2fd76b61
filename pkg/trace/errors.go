package trace

import "errors"

var (
	// ErrSyntax reports a malformed script line.
	ErrSyntax = errors.New("trace: syntax error")

	// ErrUnknownHandle reports a reference to a name that is not bound.
	ErrUnknownHandle = errors.New("trace: unknown handle")

	// ErrHandleLive reports an attempt to rebind a name that still owns a block.
	ErrHandleLive = errors.New("trace: handle still live")

	// ErrMismatch reports payload or chain corruption found during replay.
	ErrMismatch = errors.New("trace: mismatch")
)
