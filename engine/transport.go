package engine

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/nueva/dsp/core"
)

// State is the transport's playback state.
type State int

const (
	Stopped State = iota
	Playing
	Paused
	Rendering
)

var stateNames = [...]string{
	Stopped:   "stopped",
	Playing:   "playing",
	Paused:    "paused",
	Rendering: "rendering",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

const maxPosition = 1 << 62

// Transport tracks the playback state and a position in frames. It starts
// Stopped at position 0.
type Transport struct {
	state      State
	position   int64
	sampleRate int

	log logrus.FieldLogger
}

// NewTransport returns a stopped transport counting frames at sampleRate.
// A non-positive rate falls back to the default processor rate.
func NewTransport(sampleRate int) *Transport {
	if sampleRate <= 0 {
		sampleRate = core.DefaultProcessorConfig().SampleRate
	}
	return &Transport{sampleRate: sampleRate, log: discardLogger()}
}

// State returns the current state.
func (t *Transport) State() State { return t.state }

// Position returns the position in frames.
func (t *Transport) Position() int64 { return t.position }

// SampleRate returns the rate positions are counted at.
func (t *Transport) SampleRate() int { return t.sampleRate }

// PositionSeconds returns the position in seconds.
func (t *Transport) PositionSeconds() float64 {
	return float64(t.position) / float64(t.sampleRate)
}

func (t *Transport) transition(to State) {
	if t.state == to {
		return
	}
	t.log.WithFields(logrus.Fields{"from": t.state.String(), "to": to.String()}).Debug("transport")
	t.state = to
}

// Play starts playback from any state.
func (t *Transport) Play() { t.transition(Playing) }

// Pause pauses playback. It does nothing unless the transport is Playing.
func (t *Transport) Pause() {
	if t.state == Playing {
		t.transition(Paused)
	}
}

// Stop returns to Stopped from any state and rewinds to 0.
func (t *Transport) Stop() {
	t.transition(Stopped)
	t.position = 0
}

// Seek moves to round(seconds * sample rate) without changing the state.
// Negative and NaN positions seek to 0.
func (t *Transport) Seek(seconds float64) {
	pos := math.Round(seconds * float64(t.sampleRate))
	if !(pos > 0) {
		pos = 0
	}
	t.position = int64(min(pos, maxPosition))
}

// BeginRender enters Rendering from any other state and rewinds to 0.
func (t *Transport) BeginRender() error {
	if t.state == Rendering {
		return &core.Error{Kind: core.KindTransport, ID: t.state.String(), Detail: "render already in progress"}
	}
	t.transition(Rendering)
	t.position = 0
	return nil
}

// EndRender leaves Rendering for Stopped and rewinds to 0.
func (t *Transport) EndRender() error {
	if t.state != Rendering {
		return &core.Error{Kind: core.KindTransport, ID: t.state.String(), Detail: "no render in progress"}
	}
	t.Stop()
	return nil
}

// Advance moves the position forward by frames while Playing or Rendering.
func (t *Transport) Advance(frames int) {
	if frames > 0 && (t.state == Playing || t.state == Rendering) {
		t.position += int64(frames)
	}
}

// SetSampleRate changes the counting rate, keeping the position in
// seconds.
func (t *Transport) SetSampleRate(sampleRate int) error {
	if sampleRate <= 0 {
		return core.ParamError("sample_rate", float64(sampleRate), 1, math.MaxInt32)
	}
	if sampleRate == t.sampleRate {
		return nil
	}
	seconds := t.PositionSeconds()
	t.sampleRate = sampleRate
	t.Seek(seconds)
	return nil
}
