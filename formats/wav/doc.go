// Package wav reads and writes RIFF/WAVE files as interleaved float32
// buffers.
//
// Integer PCM is normalized by 2^(bits-1) on import. Save writes 32-bit IEEE
// float, which round-trips samples unchanged; SaveWithDepth quantizes to 16
// or 24 bits after clamping to [-1, 1].
package wav
