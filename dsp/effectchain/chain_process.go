package effectchain

import (
	"fmt"

	"github.com/cwbudde/nueva/dsp/buffer"
)

// Prepare sizes every effect, disabled ones included, for sampleRate and
// maxBlockSize. It stops at the first failure.
func (c *Chain) Prepare(sampleRate, maxBlockSize int) error {
	for _, e := range c.effects {
		if err := e.Prepare(sampleRate, maxBlockSize); err != nil {
			return fmt.Errorf("effectchain: prepare %q (%s): %w", e.ID(), e.Type(), err)
		}
	}

	c.log.WithField("sample_rate", sampleRate).
		WithField("max_block_size", maxBlockSize).
		WithField("effects", len(c.effects)).
		Debug("chain prepared")
	return nil
}

// Reset clears the state of every effect.
func (c *Chain) Reset() {
	for _, e := range c.effects {
		e.Reset()
	}
}

// Process runs buf through every enabled effect in order. The first error
// aborts the remaining effects; buf is not rolled back.
func (c *Chain) Process(buf *buffer.Buffer) error {
	for _, e := range c.effects {
		if !e.Enabled() {
			continue
		}
		if err := e.Process(buf); err != nil {
			return fmt.Errorf("effectchain: process %q (%s): %w", e.ID(), e.Type(), err)
		}
	}
	return nil
}
