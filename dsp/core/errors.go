package core

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies every failure surfaced by the module. The set is closed:
// callers can switch over it exhaustively and render Kind.Hint to users.
type Kind int

const (
	// KindRead reports a file that could not be opened or decoded.
	KindRead Kind = iota + 1
	// KindWrite reports a file that could not be created or encoded.
	KindWrite
	// KindUnsupportedFormat reports a container or sample format the codec
	// cannot represent.
	KindUnsupportedFormat
	// KindInvalidBuffer reports a buffer that violates its shape invariants.
	KindInvalidBuffer
	// KindEmptyBuffer reports an operation that needs audio but got none.
	KindEmptyBuffer
	KindSampleRateMismatch
	KindChannelMismatch
	// KindInvalidParameter reports a parameter value outside its documented range.
	KindInvalidParameter
	// KindUnknownParameter reports a parameter name the effect does not define.
	KindUnknownParameter
	KindSerialization
	KindEffectNotFound
	KindUnknownEffect
	// KindNotPrepared reports processing before Prepare sized the effect state.
	KindNotPrepared
	KindChain
	KindLayerEmpty
	KindTransport
	KindConfig
)

var kindNames = [...]string{
	KindRead:               "read",
	KindWrite:              "write",
	KindUnsupportedFormat:  "unsupported format",
	KindInvalidBuffer:      "invalid buffer",
	KindEmptyBuffer:        "empty buffer",
	KindSampleRateMismatch: "sample rate mismatch",
	KindChannelMismatch:    "channel mismatch",
	KindInvalidParameter:   "invalid parameter",
	KindUnknownParameter:   "unknown parameter",
	KindSerialization:      "serialization",
	KindEffectNotFound:     "effect not found",
	KindUnknownEffect:      "unknown effect",
	KindNotPrepared:        "not prepared",
	KindChain:              "chain",
	KindLayerEmpty:         "layer empty",
	KindTransport:          "transport",
	KindConfig:             "config",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Hint returns a static, human-readable recovery suggestion for the kind.
func (k Kind) Hint() string {
	switch k {
	case KindRead:
		return "Check that the file exists and is a valid audio file"
	case KindWrite:
		return "Check that the output directory exists and is writable"
	case KindUnsupportedFormat:
		return "Convert to WAV format (16/24/32-bit, 44.1/48/96 kHz)"
	case KindInvalidBuffer:
		return "Use at least one channel, a positive sample rate, and whole frames"
	case KindEmptyBuffer:
		return "Load audio before processing"
	case KindSampleRateMismatch:
		return "Prepare the effect chain at the buffer's sample rate"
	case KindChannelMismatch:
		return "Convert the audio to a supported channel layout"
	case KindInvalidParameter:
		return "Adjust the parameter to be within valid range"
	case KindUnknownParameter:
		return "Use one of the parameter names listed for the effect"
	case KindSerialization:
		return "Check the preset for malformed JSON or mistyped fields"
	case KindEffectNotFound:
		return "List the chain's effect ids and retry with an existing one"
	case KindUnknownEffect:
		return "Use one of the registered effect types"
	case KindNotPrepared:
		return "Call Prepare with the sample rate before processing"
	case KindChain:
		return "Inspect the failing effect and its parameters"
	case KindLayerEmpty:
		return "Load a source file first"
	case KindTransport:
		return "Check the transport state before changing it"
	case KindConfig:
		return "Fix the configuration file and try again"
	default:
		return "Check the error details and try again"
	}
}

// Error is the single tagged error type used across the module. Only the
// fields relevant to Kind are populated.
type Error struct {
	Kind Kind

	Path string

	Param string
	Value float64
	Min   float64
	Max   float64

	// ID names the effect, layer, or transport state involved.
	ID string

	Expected int
	Actual   int

	Detail string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())

	switch e.Kind {
	case KindRead, KindWrite:
		fmt.Fprintf(&b, " %q", e.Path)
	case KindUnsupportedFormat, KindConfig:
		if e.Path != "" {
			fmt.Fprintf(&b, " %q", e.Path)
		}
	case KindInvalidParameter:
		if e.Detail == "" {
			fmt.Fprintf(&b, ": %s=%g outside [%g, %g]", e.Param, e.Value, e.Min, e.Max)
		} else {
			fmt.Fprintf(&b, ": %s", e.Param)
		}
	case KindUnknownParameter:
		fmt.Fprintf(&b, ": %q", e.Param)
	case KindSampleRateMismatch, KindChannelMismatch:
		fmt.Fprintf(&b, ": expected %d, got %d", e.Expected, e.Actual)
	case KindEffectNotFound, KindUnknownEffect:
		fmt.Fprintf(&b, ": %q", e.ID)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Hint returns the recovery hint of the error's kind.
func (e *Error) Hint() string { return e.Kind.Hint() }

// Is matches another *Error of the same kind, so the per-kind sentinels
// below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrRead               = &Error{Kind: KindRead}
	ErrWrite              = &Error{Kind: KindWrite}
	ErrUnsupportedFormat  = &Error{Kind: KindUnsupportedFormat}
	ErrInvalidBuffer      = &Error{Kind: KindInvalidBuffer}
	ErrEmptyBuffer        = &Error{Kind: KindEmptyBuffer}
	ErrSampleRateMismatch = &Error{Kind: KindSampleRateMismatch}
	ErrChannelMismatch    = &Error{Kind: KindChannelMismatch}
	ErrInvalidParameter   = &Error{Kind: KindInvalidParameter}
	ErrUnknownParameter   = &Error{Kind: KindUnknownParameter}
	ErrSerialization      = &Error{Kind: KindSerialization}
	ErrEffectNotFound     = &Error{Kind: KindEffectNotFound}
	ErrUnknownEffect      = &Error{Kind: KindUnknownEffect}
	ErrNotPrepared        = &Error{Kind: KindNotPrepared}
	ErrChain              = &Error{Kind: KindChain}
	ErrLayerEmpty         = &Error{Kind: KindLayerEmpty}
	ErrTransport          = &Error{Kind: KindTransport}
	ErrConfig             = &Error{Kind: KindConfig}
)

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ReadError wraps a decode or file-access failure for path.
func ReadError(path string, err error) *Error {
	return &Error{Kind: KindRead, Path: path, Err: err}
}

// WriteError wraps an encode or file-creation failure for path.
func WriteError(path string, err error) *Error {
	return &Error{Kind: KindWrite, Path: path, Err: err}
}

// ParamError reports value outside [lo, hi] for the named parameter.
func ParamError(name string, value, lo, hi float64) *Error {
	return &Error{Kind: KindInvalidParameter, Param: name, Value: value, Min: lo, Max: hi}
}

// UnknownParamError reports a parameter name that is not defined.
func UnknownParamError(name string) *Error {
	return &Error{Kind: KindUnknownParameter, Param: name}
}

// Errorf builds an error of the given kind with a formatted detail.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap tags err with kind, adding detail. A nil err yields nil.
func Wrap(kind Kind, err error, detail string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Detail: detail, Err: err}
}
