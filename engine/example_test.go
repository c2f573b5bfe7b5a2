package engine_test

import (
	"fmt"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/effectchain"
	"github.com/cwbudde/nueva/dsp/effects"
	"github.com/cwbudde/nueva/engine"
)

func ExampleTransport() {
	tr := engine.NewTransport(44100)
	tr.Play()
	tr.Seek(2.5)
	tr.Pause()
	fmt.Println(tr.State(), tr.Position())

	tr.Stop()
	fmt.Println(tr.State(), tr.Position())
	// Output:
	// paused 110250
	// stopped 0
}

func ExampleEngine_Render() {
	trim := effects.NewGain("trim")
	_ = trim.SetGainDB(-6)
	chain := effectchain.New()
	chain.Add(trim)

	e := engine.New(engine.WithChain(chain))
	src, _ := buffer.Sine(440, 1, 44100)
	if err := e.LoadSource(src); err != nil {
		panic(err)
	}

	out, err := e.Render()
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s layer: %.1f dB -> %.1f dB\n", e.Layers().ActiveLayer(), src.RMSDB(), out.RMSDB())
	// Output: source layer: -3.0 dB -> -9.0 dB
}
