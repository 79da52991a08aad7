package pitchtrack

import (
	"fmt"
	"math"
	"sort"
)

// minFrequency guards the logarithm in Hz-to-MIDI conversion against
// non-positive input.
const minFrequency = 1e-10

// Frame is a single fundamental-frequency estimate.
type Frame struct {
	Time       float64 // seconds
	Frequency  float64 // Hz
	Confidence float64 // 0..1
}

// MIDI returns the fractional MIDI note number of the frame.
func (f Frame) MIDI() float64 {
	return HzToMIDI(f.Frequency)
}

// Track is an ordered sequence of pitch frames, as produced by an external
// fundamental-frequency estimator.
type Track []Frame

// HzToMIDI converts a frequency in Hz to a fractional MIDI note number
// (A4 = 440 Hz = 69). Non-positive frequencies are clamped before the
// logarithm is taken.
func HzToMIDI(freqHz float64) float64 {
	return 69 + 12*math.Log2(math.Max(freqHz, minFrequency)/440)
}

// MIDIToHz converts a MIDI note number to a frequency in Hz.
func MIDIToHz(midi float64) float64 {
	return 440 * math.Pow(2, (midi-69)/12)
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the scientific note name for an integer MIDI note
// number, e.g. 60 -> "C4".
func NoteName(midi int) string {
	octave := midi/12 - 1
	name := noteNames[((midi%12)+12)%12]
	return fmt.Sprintf("%s%d", name, octave)
}

// Validate checks the track invariants: non-decreasing times, positive
// frequencies and confidences within [0,1].
func (t Track) Validate() error {
	for i, f := range t {
		if i > 0 && f.Time < t[i-1].Time {
			return fmt.Errorf("pitch track time must be non-decreasing at index %d: %f < %f", i, f.Time, t[i-1].Time)
		}
		if f.Frequency <= 0 {
			return fmt.Errorf("pitch track frequency must be > 0 at index %d: %f", i, f.Frequency)
		}
		if f.Confidence < 0 || f.Confidence > 1 {
			return fmt.Errorf("pitch track confidence must be in [0,1] at index %d: %f", i, f.Confidence)
		}
	}
	return nil
}

// Times returns the frame timestamps in seconds.
func (t Track) Times() []float64 {
	out := make([]float64, len(t))
	for i, f := range t {
		out[i] = f.Time
	}
	return out
}

// MIDINotes returns the fractional MIDI note number of every frame.
func (t Track) MIDINotes() []float64 {
	out := make([]float64, len(t))
	for i, f := range t {
		out[i] = f.MIDI()
	}
	return out
}

// AverageMIDI returns the unweighted mean MIDI note number of the track,
// or 0 for an empty track.
func (t Track) AverageMIDI() float64 {
	if len(t) == 0 {
		return 0
	}
	sum := 0.0
	for _, f := range t {
		sum += f.MIDI()
	}
	return sum / float64(len(t))
}

// FilterConfidence returns the frames whose confidence is strictly above
// threshold, preserving order. The input track is not modified.
func (t Track) FilterConfidence(threshold float64) Track {
	out := make(Track, 0, len(t))
	for _, f := range t {
		if f.Confidence > threshold {
			out = append(out, f)
		}
	}
	return out
}

// SmoothFrequencies applies a median filter of the given odd window size to
// the frequency values, leaving times and confidences untouched. Tracks not
// longer than the window are returned unchanged, as are window sizes below 3.
func (t Track) SmoothFrequencies(window int) Track {
	if window < 3 || window%2 == 0 || len(t) <= window {
		return t
	}

	out := make(Track, len(t))
	copy(out, t)

	half := window / 2
	scratch := make([]float64, 0, window)
	for i := range t {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > len(t) {
			hi = len(t)
		}

		scratch = scratch[:0]
		for _, f := range t[lo:hi] {
			scratch = append(scratch, f.Frequency)
		}
		sort.Float64s(scratch)
		out[i].Frequency = scratch[len(scratch)/2]
	}
	return out
}
