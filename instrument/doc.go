// Package instrument provides the static instrument metadata catalog:
// transposition, clefs, pitch ranges and General MIDI programs for the
// supported orchestral instruments.
//
// The table is embedded at build time, decoded once via Load, and read-only
// afterwards. Preferred-clef derivation takes an optional average-pitch
// hint for instruments notated on more than one clef.
package instrument
