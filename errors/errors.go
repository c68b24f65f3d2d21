// Package errors holds the registered root errors of the ledger and the
// helpers that wrap them.
//
// Every error a handler returns should wrap a root error, so the client gets
// a stable ABCI code next to the message. Extensions register their own root
// errors at init time with Register; x/challenge does that for the wager
// specific failures. Wrap attaches a stack trace on the innermost layer only.
package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors. Code 0 means success and code 1 marks any error that was not
// registered, so neither can be taken.
var (
	ErrUnauthorized       = Register(2, "unauthorized")
	ErrNotFound           = Register(3, "not found")
	ErrInvalidMsg         = Register(4, "invalid message")
	ErrInvalidModel       = Register(5, "invalid model")
	ErrDuplicate          = Register(6, "duplicate")
	ErrHuman              = Register(7, "coding error")
	ErrImmutable          = Register(8, "cannot be modified")
	ErrEmpty              = Register(9, "value is empty")
	ErrInvalidState       = Register(10, "invalid state")
	ErrInvalidType        = Register(11, "invalid type")
	ErrInsufficientAmount = Register(12, "insufficient amount")
	ErrInvalidAmount      = Register(13, "invalid amount")
	ErrInvalidInput       = Register(14, "invalid input")
	ErrOverflow           = Register(16, "value overflow")
	ErrDatabase           = Register(17, "database")
	ErrIteratorDone       = Register(18, "iterator done")

	// ErrPanic is only produced by Recover.
	ErrPanic = Register(111222, "panic")
)

var registered = map[uint32]*Error{
	SuccessABCICode: nil,
	internalCode:    nil,
}

// Register declares a new root error. It panics when the code is taken, so
// call it from package level variables only.
func Register(code uint32, description string) *Error {
	if _, taken := registered[code]; taken {
		panic(fmt.Sprintf("error code %d is already registered", code))
	}
	e := &Error{code: code, desc: description}
	registered[code] = e
	return e
}

// Error is a registered root error.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string { return e.desc }

// ABCICode is the code returned to the client for this error and anything
// that wraps it.
func (e Error) ABCICode() uint32 { return e.code }

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with a format string.
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(format, args...))
}

// Is reports whether err is e or wraps e. A nil *Error matches only nil
// errors, including typed nil pointers.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNil(err)
	}
	return walk(err, func(layer error) bool { return layer == e })
}

// Wrap prefixes err with description. A nil err stays nil, so it is safe to
// wrap the result of a call directly.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	traced := walk(err, func(layer error) bool {
		_, ok := layer.(interface{ StackTrace() errors.StackTrace })
		return ok
	})
	if !traced {
		err = errors.WithStack(err)
	}
	return &wrapped{msg: description, cause: err}
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Recover turns a panic into ErrPanic and stores it in *err. Use it with
// defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type wrapped struct {
	msg   string
	cause error
}

func (w *wrapped) Error() string { return w.msg + ": " + w.cause.Error() }

func (w *wrapped) Cause() error { return w.cause }

// walk calls match on err and then on every error it wraps, stopping at the
// first layer that matches.
func walk(err error, match func(error) bool) bool {
	for err != nil {
		if match(err) {
			return true
		}
		c, ok := err.(interface{ Cause() error })
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

func isNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
