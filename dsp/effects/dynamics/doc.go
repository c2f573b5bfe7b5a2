// Package dynamics provides the level-dependent effects of a chain.
//
// Included processors:
//   - Compressor: feed-forward peak compressor with hard or soft knee and
//     optional automatic makeup gain.
//   - Gate: noise gate with hold time and a floor (range) instead of hard
//     muting.
//   - Limiter: fast-attack peak limiter with a hard ceiling.
//
// All three detect the peak across channels for every frame and apply one
// gain to the whole frame, so the stereo image does not shift under gain
// reduction. They must be prepared before processing.
package dynamics
