package buffer_test

import (
	"fmt"

	"github.com/cwbudde/nueva/dsp/buffer"
)

func ExampleBuffer_ApplyGainDB() {
	b, err := buffer.New([]float32{1, -1, 0.5, -0.5}, 2, 48000)
	if err != nil {
		panic(err)
	}

	b.ApplyGainDB(-6.0206)

	fmt.Printf("%.3f\n", b.Samples())
	fmt.Println(b.Frames(), b.Channels())

	// Output:
	// [0.500 -0.500 0.250 -0.250]
	// 2 2
}
