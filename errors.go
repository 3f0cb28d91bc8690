package golcms

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrClosed is returned by every method of an object that has been closed,
	// or of a borrowed view whose owner has been closed.
	ErrClosed = errors.New("golcms: object is closed")

	// ErrNullHandle reports that the engine returned no object.
	ErrNullHandle = errors.New("golcms: engine returned a null handle")

	// ErrFailed reports that the engine rejected an operation.
	ErrFailed = errors.New("golcms: operation failed")

	// ErrInvalidArgument reports an argument rejected before reaching the engine.
	ErrInvalidArgument = errors.New("golcms: invalid argument")

	// ErrUnsupported reports an operation the linked engine does not provide.
	ErrUnsupported = errors.New("golcms: not supported by the linked engine")

	// ErrNotFound reports a missing property, patch or data field.
	ErrNotFound = errors.New("golcms: not found")

	// ErrTagType reports a typed tag access on a tag of another kind.
	ErrTagType = errors.New("golcms: tag holds a different type")
)

// ErrorCode classifies errors reported by the engine.
type ErrorCode uint32

const (
	ErrorUndefined          ErrorCode = 0
	ErrorFile               ErrorCode = 1
	ErrorRange              ErrorCode = 2
	ErrorInternal           ErrorCode = 3
	ErrorNull               ErrorCode = 4
	ErrorRead               ErrorCode = 5
	ErrorSeek               ErrorCode = 6
	ErrorWrite              ErrorCode = 7
	ErrorUnknownExtension   ErrorCode = 8
	ErrorColorspaceCheck    ErrorCode = 9
	ErrorAlreadyDefined     ErrorCode = 10
	ErrorBadSignature       ErrorCode = 11
	ErrorCorruptionDetected ErrorCode = 12
	ErrorNotSuitable        ErrorCode = 13
)

var errorCodeNames = [...]string{
	"undefined",
	"file",
	"range",
	"internal",
	"null",
	"read",
	"seek",
	"write",
	"unknown extension",
	"colorspace check",
	"already defined",
	"bad signature",
	"corruption detected",
	"not suitable",
}

func (c ErrorCode) String() string {
	if int(c) < len(errorCodeNames) {
		return errorCodeNames[c]
	}
	return fmt.Sprintf("code %d", uint32(c))
}

// Error describes a failed engine call. When the engine reported a message for
// the failure, Code and Message carry it.
type Error struct {
	Op      string
	Code    ErrorCode
	Message string

	err error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("golcms: %s: %v", e.Op, e.err)
	}
	return fmt.Sprintf("golcms: %s: %s (%s)", e.Op, e.Message, e.Code)
}

func (e *Error) Unwrap() error { return e.err }

// ErrorHandler receives messages reported by the engine.
type ErrorHandler func(code ErrorCode, message string)

// errorState collects engine reports for one context. A report is attached to
// the failure of the call that produced it; reports still pending when the
// next call starts are dropped. With several goroutines calling into the same
// context at once the attribution is best effort.
type errorState struct {
	mu      sync.Mutex
	code    ErrorCode
	message string
	pending bool
	handler ErrorHandler
	name    string
}

var globalErrors = &errorState{name: "global"}

func (s *errorState) report(code ErrorCode, message string) {
	s.mu.Lock()
	s.code, s.message, s.pending = code, message, true
	handler := s.handler
	s.mu.Unlock()

	if handler != nil {
		handler(code, message)
		return
	}
	logger().Debug("engine error", "context", s.name, "code", code.String(), "message", message)
}

// clear drops a report no failure has consumed yet.
func (s *errorState) clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
}

func (s *errorState) setHandler(fn ErrorHandler) {
	s.mu.Lock()
	s.handler = fn
	s.mu.Unlock()
}

// fail builds the error for a failed call, consuming any pending report.
func (s *errorState) fail(op string, err error) error {
	e := &Error{Op: op, err: err}
	s.mu.Lock()
	if s.pending {
		e.Code, e.Message = s.code, s.message
		s.pending = false
	}
	s.mu.Unlock()
	return e
}

func errorsOf(ctx *Context) *errorState {
	if ctx == nil {
		return globalErrors
	}
	return ctx.errs
}

// fail builds the error for a failed call on h.
func (h *handle) fail(op string, err error) error {
	return errorsOf(h.ctx).fail(op, err)
}

func invalidArg(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
