package engine

import (
	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
)

// Layer names the buffer ActiveAudio resolves to.
type Layer int

const (
	LayerNone Layer = iota
	LayerSource
	LayerAI
)

func (l Layer) String() string {
	switch l {
	case LayerSource:
		return "source"
	case LayerAI:
		return "ai"
	default:
		return "none"
	}
}

// Layers holds the immutable source and the optional AI-processed state
// derived from it. The AI state, when present, takes precedence.
//
// Layers owns the buffers handed to it; callers that keep processing a
// buffer must Clone it first.
type Layers struct {
	source  *buffer.Buffer
	aiState *buffer.Buffer
	aiDirty bool
}

// LoadSource replaces the source and discards any AI state, which no
// longer matches the new source. The AI layer is marked dirty.
func (l *Layers) LoadSource(buf *buffer.Buffer) error {
	if buf == nil {
		return core.Errorf(core.KindInvalidBuffer, "nil source buffer")
	}
	l.source = buf
	l.aiState = nil
	l.aiDirty = true
	return nil
}

// SetAIState stores buf as the AI layer and marks it clean. It fails with
// a layer-empty error, changing nothing, when no source is loaded.
func (l *Layers) SetAIState(buf *buffer.Buffer) error {
	if l.source == nil {
		return &core.Error{Kind: core.KindLayerEmpty, ID: LayerSource.String()}
	}
	if buf == nil {
		return core.Errorf(core.KindInvalidBuffer, "nil ai state buffer")
	}
	l.aiState = buf
	l.aiDirty = false
	return nil
}

// ClearAIState drops the AI layer. With a source loaded the layer becomes
// dirty again.
func (l *Layers) ClearAIState() {
	l.aiState = nil
	l.aiDirty = l.source != nil
}

// MarkAIDirty flags the AI layer as needing regeneration.
func (l *Layers) MarkAIDirty() {
	if l.source != nil {
		l.aiDirty = true
	}
}

// HasSource reports whether a source has been loaded.
func (l *Layers) HasSource() bool { return l.source != nil }

// Source returns the imported audio.
func (l *Layers) Source() (*buffer.Buffer, bool) { return l.source, l.source != nil }

// AIState returns the AI-processed audio, if any.
func (l *Layers) AIState() (*buffer.Buffer, bool) { return l.aiState, l.aiState != nil }

// IsAIDirty reports whether the AI layer is missing or stale for the
// current source.
func (l *Layers) IsAIDirty() bool { return l.aiDirty }

// ActiveLayer reports which layer ActiveAudio returns.
func (l *Layers) ActiveLayer() Layer {
	switch {
	case l.aiState != nil:
		return LayerAI
	case l.source != nil:
		return LayerSource
	default:
		return LayerNone
	}
}

// ActiveAudio returns the AI state if present, else the source. It is the
// single read path for rendering and export.
func (l *Layers) ActiveAudio() (*buffer.Buffer, bool) {
	switch l.ActiveLayer() {
	case LayerAI:
		return l.aiState, true
	case LayerSource:
		return l.source, true
	default:
		return nil, false
	}
}
