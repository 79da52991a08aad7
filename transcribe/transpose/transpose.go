// Package transpose maps MIDI pitches between sounding (concert) pitch and
// an instrument's written pitch.
//
// The mapping is a pure linear offset by the instrument's transposition:
// written = concert - semitones, concert = written + semitones. A horn in F
// sounds a fifth below written (-7 semitones), so its part is written seven
// semitones above concert pitch. No range clamping is applied; callers deal
// with out-of-staff results.
package transpose

import "github.com/cwbudde/algo-transcribe/transcribe/quantize"

// ConcertToWritten converts concert pitches to written pitches for an
// instrument transposing by the given semitones. Order and count are
// preserved; the input slice is not modified.
func ConcertToWritten(concert []int, semitones int) []int {
	out := make([]int, len(concert))
	for i, p := range concert {
		out[i] = p - semitones
	}
	return out
}

// WrittenToConcert converts written pitches back to concert pitches.
func WrittenToConcert(written []int, semitones int) []int {
	out := make([]int, len(written))
	for i, p := range written {
		out[i] = p + semitones
	}
	return out
}

// NotesToWritten returns a copy of the quantized notes with their pitches
// converted from concert to written pitch. Timing and confidence are left
// untouched.
func NotesToWritten(in []quantize.Note, semitones int) []quantize.Note {
	out := make([]quantize.Note, len(in))
	for i, n := range in {
		n.Pitch -= semitones
		out[i] = n
	}
	return out
}

// NotesToConcert returns a copy of the quantized notes with their pitches
// converted from written back to concert pitch.
func NotesToConcert(in []quantize.Note, semitones int) []quantize.Note {
	out := make([]quantize.Note, len(in))
	for i, n := range in {
		n.Pitch += semitones
		out[i] = n
	}
	return out
}
