package engine

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/dsp/effect"
	"github.com/cwbudde/nueva/dsp/effectchain"
	"github.com/cwbudde/nueva/formats"
	"github.com/cwbudde/nueva/formats/wav"
	"github.com/cwbudde/nueva/measure/analysis"
)

// Engine owns one editing session.
type Engine struct {
	cfg core.ProcessorConfig

	layers    Layers
	transport *Transport
	chain     *effectchain.Chain
	effects   *effect.Registry
	formats   *formats.Registry

	rendered *buffer.Buffer

	log logrus.FieldLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for session events. The chain and transport
// log through it too.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.log = logger
		}
	}
}

// WithProcessorOptions sets the default sample rate and the render block
// size.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(e *Engine) {
		e.cfg = core.ApplyProcessorOptions(opts...)
	}
}

// WithChain replaces the initially empty effect chain.
func WithChain(c *effectchain.Chain) Option {
	return func(e *Engine) {
		if c != nil {
			e.chain = c
		}
	}
}

// WithEffectRegistry sets the registry presets are decoded against.
func WithEffectRegistry(r *effect.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.effects = r
		}
	}
}

// WithFormats sets the decoders Import uses.
func WithFormats(r *formats.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.formats = r
		}
	}
}

// New returns an engine with no source loaded.
func New(opts ...Option) *Engine {
	e := &Engine{
		cfg: core.DefaultProcessorConfig(),
		log: discardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	if e.chain == nil {
		e.chain = effectchain.New(effectchain.WithLogger(e.log))
	}
	if e.effects == nil {
		e.effects = effectchain.DefaultRegistry()
	}
	if e.formats == nil {
		e.formats = formats.DefaultRegistry()
	}
	e.transport = NewTransport(e.cfg.SampleRate)
	e.transport.log = e.log
	return e
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Layers returns the session's layer model.
func (e *Engine) Layers() *Layers { return &e.layers }

// Transport returns the playback and render state machine.
func (e *Engine) Transport() *Transport { return e.transport }

// Chain returns the effect chain Render runs.
func (e *Engine) Chain() *effectchain.Chain { return e.chain }

// SetChain replaces the effect chain. The previous render is discarded.
func (e *Engine) SetChain(c *effectchain.Chain) {
	e.chain = c
	e.rendered = nil
}

// EffectRegistry returns the registry presets are decoded against.
func (e *Engine) EffectRegistry() *effect.Registry { return e.effects }

// LoadPreset replaces the chain with one decoded from a JSON preset.
func (e *Engine) LoadPreset(data []byte) error {
	c, err := effectchain.Decode(e.effects, data, effectchain.WithLogger(e.log))
	if err != nil {
		return err
	}
	e.SetChain(c)
	return nil
}

// Import decodes the file at path and loads it as the source. The transport
// is stopped and follows the file's sample rate.
func (e *Engine) Import(path string) error {
	buf, err := e.formats.Load(path)
	if err != nil {
		return err
	}
	if err := e.LoadSource(buf); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"path":        path,
		"sample_rate": buf.SampleRate(),
		"channels":    buf.Channels(),
		"frames":      buf.Frames(),
	}).Info("source imported")
	return nil
}

// LoadSource loads buf as the source, discarding any AI state and the
// previous render.
func (e *Engine) LoadSource(buf *buffer.Buffer) error {
	if err := e.layers.LoadSource(buf); err != nil {
		return err
	}
	e.rendered = nil
	e.transport.Stop()
	return e.transport.SetSampleRate(buf.SampleRate())
}

// SetAIState stores buf as the AI layer; it fails without a source. The
// previous render is discarded.
func (e *Engine) SetAIState(buf *buffer.Buffer) error {
	if err := e.layers.SetAIState(buf); err != nil {
		return err
	}
	e.rendered = nil
	return nil
}

// Render processes a copy of the active layer through the chain in blocks
// of the configured size and returns it. The transport is Rendering for
// the duration and Stopped afterwards, also when processing fails.
func (e *Engine) Render() (out *buffer.Buffer, err error) {
	active, ok := e.layers.ActiveAudio()
	if !ok {
		return nil, &core.Error{Kind: core.KindLayerEmpty, ID: LayerSource.String()}
	}

	if err := e.transport.BeginRender(); err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, e.transport.EndRender())
		if err != nil {
			out = nil
		}
	}()

	out = active.Clone()
	block := e.cfg.BlockSize
	if err := e.chain.Prepare(out.SampleRate(), block); err != nil {
		return nil, err
	}
	e.chain.Reset()

	frames := out.Frames()
	for start := 0; start < frames; start += block {
		view := out.Slice(start, start+block)
		if err := e.chain.Process(view); err != nil {
			return nil, err
		}
		e.transport.Advance(view.Frames())
	}

	e.rendered = out
	e.log.WithFields(logrus.Fields{
		"layer":       e.layers.ActiveLayer().String(),
		"sample_rate": out.SampleRate(),
		"channels":    out.Channels(),
		"frames":      frames,
		"effects":     e.chain.Len(),
	}).Info("render complete")
	return out, nil
}

// Rendered returns the output of the last successful Render.
func (e *Engine) Rendered() (*buffer.Buffer, bool) { return e.rendered, e.rendered != nil }

// Export renders the active layer and writes it to path as WAV at bitDepth
// (16, 24 or 32; 32 is float).
func (e *Engine) Export(path string, bitDepth int) error {
	out, err := e.Render()
	if err != nil {
		return err
	}
	if err := wav.SaveWithDepth(path, out, bitDepth); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"path":        path,
		"sample_rate": out.SampleRate(),
		"channels":    out.Channels(),
		"frames":      out.Frames(),
		"bit_depth":   bitDepth,
	}).Info("render exported")
	return nil
}

// Verify analyses the last render, rendering first when there is none.
func (e *Engine) Verify() (analysis.Report, error) {
	out, ok := e.Rendered()
	if !ok {
		var err error
		if out, err = e.Render(); err != nil {
			return analysis.Report{}, err
		}
	}
	return analysis.Analyze(out), nil
}
