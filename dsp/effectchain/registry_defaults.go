package effectchain

import (
	"github.com/cwbudde/nueva/dsp/effect"
	"github.com/cwbudde/nueva/dsp/effects"
	"github.com/cwbudde/nueva/dsp/effects/dynamics"
	"github.com/cwbudde/nueva/dsp/effects/reverb"
)

// DefaultRegistry returns a registry with every built-in effect type.
func DefaultRegistry() *effect.Registry {
	r := effect.NewRegistry()
	RegisterBuiltins(r)
	return r
}

// RegisterBuiltins adds the built-in effect types to r. It panics if one of
// them is already registered.
func RegisterBuiltins(r *effect.Registry) {
	r.MustRegister(effects.TypeGain, func(id string) effect.Effect { return effects.NewGain(id) })
	r.MustRegister(effects.TypeEQ, func(id string) effect.Effect { return effects.NewEQ(id) })
	r.MustRegister(dynamics.TypeCompressor, func(id string) effect.Effect { return dynamics.NewCompressor(id) })
	r.MustRegister(dynamics.TypeGate, func(id string) effect.Effect { return dynamics.NewGate(id) })
	r.MustRegister(dynamics.TypeLimiter, func(id string) effect.Effect { return dynamics.NewLimiter(id) })
	r.MustRegister(reverb.Type, func(id string) effect.Effect { return reverb.New(id) })
	r.MustRegister(effects.TypeDelay, func(id string) effect.Effect { return effects.NewDelay(id) })
	r.MustRegister(effects.TypeSaturation, func(id string) effect.Effect { return effects.NewSaturation(id) })
}
