// Package quantize maps raw note timing in seconds onto a tempo/meter beat
// grid with adjustable snap strength.
//
// The grid is a fixed subdivision of the quarter-note beat (sixteenths by
// default) independent of the stated meter denominator. Snapping blends
// between the raw and grid-aligned value, so moderate strengths preserve
// expressive timing while improving legibility.
package quantize
