package effect

import (
	"encoding/json"

	"github.com/cwbudde/nueva/dsp/buffer"
)

// MaxChannels bounds the per-channel state that channel-independent
// effects size during Prepare.
const MaxChannels = 8

// Effect is one processing stage of a chain.
//
// Process mutates buf in place and never changes its channel count, frame
// count, or sample rate. It does not allocate. Prepare is the only method
// that may allocate; it must run before the first Process and again
// whenever the sample rate changes. Reset clears filter histories and delay
// contents without releasing memory, and is required before any render
// that has to be reproducible.
type Effect interface {
	ID() string
	Type() string
	Enabled() bool
	SetEnabled(enabled bool)

	Prepare(sampleRate, maxBlockSize int) error
	Process(buf *buffer.Buffer) error
	Reset()

	// Params returns a snapshot of every parameter as a number.
	Params() map[string]float64
	// SetParam validates and applies one value. On error nothing changes.
	SetParam(name string, value float64) error
	// Spec lists the parameters this effect accepts.
	Spec() Params

	json.Marshaler
	json.Unmarshaler
}
