// Package effects provides the general-purpose effects of the processing
// chain: gain, parametric EQ, feedback delay and waveshaping saturation.
//
// Every effect embeds effect.Base and therefore exposes the same parameter,
// serialization and enable/bypass surface. Dynamics processors live in
// dsp/effects/dynamics and the reverb in dsp/effects/reverb.
package effects
