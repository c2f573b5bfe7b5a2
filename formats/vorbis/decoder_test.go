package vorbis

import (
	"bytes"
	"testing"
)

func TestDecodeInvalidInput(t *testing.T) {
	t.Parallel()

	tests := map[string][]byte{
		"empty":   nil,
		"riff":    []byte("RIFF\x24\x00\x00\x00WAVEfmt "),
		"garbage": bytes.Repeat([]byte{0xAB}, 256),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := Decode(bytes.NewReader(data)); err == nil {
				t.Fatal("Decode succeeded")
			}
		})
	}
}
