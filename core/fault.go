package core

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedDescriptor = errors.New("malformed cube descriptor")

// Engine error codes carried by faults. The engine additionally sends a
// textual parameter which is matched as a fallback when the code is generic.
const (
	CodeAborted         = 15   // evaluation aborted, typically under concurrent engine load
	CodePayloadTooLarge = 2026 // requested window exceeds the transfer size limit
	CodeWrongLayout     = 16   // object is not in the assumed layout mode
)

type FaultKind int

const (
	FaultFatal FaultKind = iota
	FaultTransient
	FaultCapacity
	FaultLayout
)

func (k FaultKind) String() string {
	switch k {
	case FaultTransient:
		return "transient"
	case FaultCapacity:
		return "capacity"
	case FaultLayout:
		return "layout"
	default:
		return "fatal"
	}
}

// Fault is a non-success outcome of a remote call. It carries the engine's
// classification hints (error code and textual parameter) unchanged.
type Fault struct {
	Code      int
	Parameter string
	Message   string

	err error
}

func NewFault(code int, parameter, message string) *Fault {
	return &Fault{
		Code:      code,
		Parameter: parameter,
		Message:   message,
	}
}

// WrapFault converts any error into a fault. An error that already is a
// fault is returned as-is, hints preserved.
func WrapFault(err error) *Fault {
	if err == nil {
		return nil
	}

	var fault *Fault
	if errors.As(err, &fault) {
		return fault
	}

	return &Fault{
		Message: err.Error(),
		err:     err,
	}
}

func (f *Fault) Error() string {
	if f.Parameter != "" {
		return fmt.Sprintf("engine fault %d (%s): %s", f.Code, f.Parameter, f.Message)
	}
	return fmt.Sprintf("engine fault %d: %s", f.Code, f.Message)
}

func (f *Fault) Unwrap() error {
	return f.err
}

// Kind derives the fault taxonomy from the code, falling back to the
// textual parameter for engines that send generic codes.
func (f *Fault) Kind() FaultKind {
	switch f.Code {
	case CodeAborted:
		return FaultTransient
	case CodePayloadTooLarge:
		return FaultCapacity
	case CodeWrongLayout:
		return FaultLayout
	}

	param := strings.ToLower(f.Parameter)
	switch {
	case strings.Contains(param, "aborted"):
		return FaultTransient
	case strings.Contains(param, "size exceeded"):
		return FaultCapacity
	case strings.Contains(param, "pivot"), strings.Contains(param, "straight"):
		return FaultLayout
	default:
		return FaultFatal
	}
}
