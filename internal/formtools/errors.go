package formtools

import (
	"context"
	"errors"
	"fmt"

	slogctx "github.com/veqryn/slog-context"

	"github.com/arreyder/forms-mcp/internal/forms"
)

// ErrorKind classifies a tool failure.
type ErrorKind string

const (
	KindInvalidParams  ErrorKind = "INVALID_PARAMS"
	KindMethodNotFound ErrorKind = "METHOD_NOT_FOUND"
	KindInternal       ErrorKind = "INTERNAL_ERROR"
)

// JSON-RPC codes for each kind.
const (
	codeMethodNotFound int64 = -32601
	codeInvalidParams  int64 = -32602
	codeInternalError  int64 = -32603
)

// Code is the JSON-RPC error code conventionally used for k.
func (k ErrorKind) Code() int64 {
	switch k {
	case KindInvalidParams:
		return codeInvalidParams
	case KindMethodNotFound:
		return codeMethodNotFound
	default:
		return codeInternalError
	}
}

// ValidationError reports caller-supplied arguments that failed local checks.
type ValidationError struct {
	Field    string
	Message  string
	Expected string
	Received string
	Hint     string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UnknownToolError is returned by the dispatcher for names not in the catalog.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}

// RemoteError wraps a failed Forms API call.
type RemoteError struct {
	// Op is the operation in words, e.g. "create form".
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("Failed to %s: %s", e.Op, forms.RemoteMessage(e.Err))
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// remoteErr wraps a failed Forms API call and logs it through the logger
// carried by ctx.
func remoteErr(ctx context.Context, op string, err error) error {
	// Validation failures discovered mid-handler pass through unchanged.
	var verr *ValidationError
	if errors.As(err, &verr) {
		return err
	}
	slogctx.FromCtx(ctx).WarnContext(ctx, "forms API call failed",
		"operation", op,
		"status", forms.StatusCode(err),
		"error", forms.RemoteMessage(err),
	)
	return &RemoteError{Op: op, Err: err}
}

// KindOf classifies err.
func KindOf(err error) ErrorKind {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return KindInvalidParams
	}
	var uerr *UnknownToolError
	if errors.As(err, &uerr) {
		return KindMethodNotFound
	}
	return KindInternal
}
