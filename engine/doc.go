// Package engine ties a session together: the layer model holding the
// imported source and the optional AI-processed state, the transport, and
// the effect chain that renders the active layer for export.
//
// An Engine is single-threaded. Rendering works on a copy of the active
// layer, so the source is never modified.
package engine
