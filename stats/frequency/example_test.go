package frequency_test

import (
	"fmt"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/window"
	"github.com/cwbudde/nueva/stats/frequency"
)

func ExampleAnalyze() {
	tone, _ := buffer.Sine(1000, 1, 16000)

	s, err := frequency.Analyze(tone, 16384, window.TypeHann)
	if err != nil {
		panic(err)
	}

	freq, _ := s.Peak()
	fmt.Printf("peak near %.0f Hz\n", freq)
	// Output: peak near 1000 Hz
}
