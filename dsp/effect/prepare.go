package effect

import (
	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
)

// Preparation records the arguments of the last successful Prepare for
// effects whose state depends on the sample rate.
type Preparation struct {
	SampleRate   int
	MaxBlockSize int
}

// Update validates and stores new Prepare arguments. It reports whether the
// sample rate changed, which is when rate-dependent state must be resized.
func (p *Preparation) Update(sampleRate, maxBlockSize int) (bool, error) {
	if err := core.ValidatePrepare(sampleRate, maxBlockSize); err != nil {
		return false, err
	}
	changed := p.SampleRate != sampleRate
	p.SampleRate = sampleRate
	p.MaxBlockSize = maxBlockSize
	return changed, nil
}

// Check rejects buffers the prepared state cannot serve.
func (p *Preparation) Check(id string, buf *buffer.Buffer) error {
	if p.SampleRate == 0 {
		return &core.Error{Kind: core.KindNotPrepared, ID: id}
	}
	if buf.SampleRate() != p.SampleRate {
		return &core.Error{
			Kind: core.KindSampleRateMismatch, ID: id,
			Expected: p.SampleRate, Actual: buf.SampleRate(),
		}
	}
	return nil
}

// CheckChannels rejects buffers wider than limit.
func CheckChannels(id string, buf *buffer.Buffer, limit int) error {
	if buf.Channels() > limit {
		return &core.Error{
			Kind: core.KindChannelMismatch, ID: id,
			Expected: limit, Actual: buf.Channels(),
		}
	}
	return nil
}
