package effectchain

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/dsp/effect"
)

// Chain is an ordered, exclusively owned sequence of effects.
// It is not safe for concurrent use.
type Chain struct {
	effects []effect.Effect
	log     logrus.FieldLogger
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger routes structural changes (add, insert, remove, move, prepare)
// to logger at debug level. Processing never logs.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Chain) {
		if logger != nil {
			c.log = logger
		}
	}
}

// New returns an empty chain.
func New(opts ...Option) *Chain {
	c := &Chain{log: discardLogger()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (c *Chain) logEffect(msg string, e effect.Effect, index int) {
	c.log.WithFields(logrus.Fields{
		"effect_id":   e.ID(),
		"effect_type": e.Type(),
		"index":       index,
	}).Debug(msg)
}

// Add appends e to the end of the chain.
func (c *Chain) Add(e effect.Effect) {
	c.effects = append(c.effects, e)
	c.logEffect("effect added", e, len(c.effects)-1)
}

// Insert places e at index, clamped to [0, Len()].
func (c *Chain) Insert(index int, e effect.Effect) {
	index = clampIndex(index, len(c.effects))
	c.effects = append(c.effects, nil)
	copy(c.effects[index+1:], c.effects[index:])
	c.effects[index] = e
	c.logEffect("effect inserted", e, index)
}

// Remove detaches the first effect with the given id and hands it back to
// the caller. The chain is unchanged when no effect matches.
func (c *Chain) Remove(id string) (effect.Effect, error) {
	i := c.Index(id)
	if i < 0 {
		return nil, &core.Error{Kind: core.KindEffectNotFound, ID: id}
	}

	e := c.effects[i]
	copy(c.effects[i:], c.effects[i+1:])
	c.effects[len(c.effects)-1] = nil
	c.effects = c.effects[:len(c.effects)-1]

	c.logEffect("effect removed", e, i)
	return e, nil
}

// Get returns the first effect with the given id.
func (c *Chain) Get(id string) (effect.Effect, bool) {
	if i := c.Index(id); i >= 0 {
		return c.effects[i], true
	}
	return nil, false
}

// Index returns the position of the first effect with the given id, or -1.
func (c *Chain) Index(id string) int {
	for i, e := range c.effects {
		if e.ID() == id {
			return i
		}
	}
	return -1
}

// Move relocates the first effect with the given id to index, clamped to
// the valid range after removal.
func (c *Chain) Move(id string, index int) error {
	from := c.Index(id)
	if from < 0 {
		return &core.Error{Kind: core.KindEffectNotFound, ID: id}
	}

	e := c.effects[from]
	rest := append(c.effects[:from:from], c.effects[from+1:]...)
	to := clampIndex(index, len(rest))

	c.effects = append(rest, nil)
	copy(c.effects[to+1:], c.effects[to:])
	c.effects[to] = e

	c.logEffect("effect moved", e, to)
	return nil
}

// Len returns the number of effects, enabled or not.
func (c *Chain) Len() int { return len(c.effects) }

// IDs returns the effect ids in chain order.
func (c *Chain) IDs() []string {
	ids := make([]string, len(c.effects))
	for i, e := range c.effects {
		ids[i] = e.ID()
	}
	return ids
}

// Effects returns a snapshot of the chain order. Mutating the slice does
// not change the chain; the effects themselves are shared.
func (c *Chain) Effects() []effect.Effect {
	return append([]effect.Effect(nil), c.effects...)
}

func clampIndex(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n {
		return n
	}
	return index
}
