package wav_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/formats/wav"
)

func ExampleSaveWithDepth() {
	dir, err := os.MkdirTemp("", "wav-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	tone, _ := buffer.Sine(440, 0.1, 44100)
	path := filepath.Join(dir, "tone.wav")
	if err := wav.SaveWithDepth(path, tone, 24); err != nil {
		panic(err)
	}

	loaded, err := wav.Load(path)
	if err != nil {
		panic(err)
	}
	fmt.Println(loaded.Channels(), loaded.SampleRate(), loaded.Frames())
	// Output: 1 44100 4410
}
