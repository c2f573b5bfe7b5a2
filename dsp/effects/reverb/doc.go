// Package reverb provides a Freeverb-style algorithmic reverb.
//
// Each channel runs through a pre-delay, eight parallel damped comb filters
// and four series allpass diffusers. Delay lengths are tuned at 44.1 kHz and
// rescaled to the prepared sample rate, so the perceived room size does not
// depend on the rate.
//
// Output is a pure function of the input, the parameters and the internal
// state at the start of the call. State carries over between Process calls
// for streaming use; call Reset before every render that must reproduce an
// earlier one bit for bit.
package reverb
