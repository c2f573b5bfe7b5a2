package analysis_test

import (
	"fmt"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/measure/analysis"
)

func ExampleAnalyze() {
	tone, _ := buffer.Sine(1000, 1, 48000)
	tone.ApplyGainDB(-12)

	r := analysis.Analyze(tone)
	fmt.Printf("peak %.1f dBFS, crest %.1f dB, clipping %v\n", r.PeakdB, r.CrestFactorDB, r.IsClipping())
	// Output: peak -12.0 dBFS, crest 3.0 dB, clipping false
}
