package onset

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-transcribe/transcribe/pitchtrack"
)

// DefaultPitchChangeThreshold is the semitone jump that opens a new note
// boundary on the fallback path.
const DefaultPitchChangeThreshold = 0.5

// Segment returns the ordered, deduplicated note boundary times for a
// recording. The detector runs on the audio buffer first; if it is nil, the
// buffer is empty, or it reports no onsets, boundaries are derived from
// pitch changes in the track instead. An empty track with an empty buffer
// yields an empty boundary list.
func Segment(audio []float64, sampleRate float64, track pitchtrack.Track, det Detector) ([]float64, error) {
	if det != nil && len(audio) > 0 {
		onsets, err := det.Detect(audio, sampleRate)
		if err != nil {
			return nil, err
		}
		if len(onsets) > 0 {
			return sortAndDedupe(onsets), nil
		}
	}
	return PitchChangeBoundaries(track, DefaultPitchChangeThreshold), nil
}

// PitchChangeBoundaries scans the track and emits a boundary at the first
// frame, then at every frame whose absolute semitone distance from the
// previous frame exceeds the threshold; the later frame's time is used.
// An empty track yields no boundaries.
func PitchChangeBoundaries(track pitchtrack.Track, thresholdSemitones float64) []float64 {
	if len(track) == 0 {
		return nil
	}

	boundaries := []float64{track[0].Time}
	prev := track[0].MIDI()
	for _, f := range track[1:] {
		midi := f.MIDI()
		if math.Abs(midi-prev) > thresholdSemitones {
			boundaries = append(boundaries, f.Time)
		}
		prev = midi
	}
	return boundaries
}

func sortAndDedupe(times []float64) []float64 {
	if len(times) == 0 {
		return times
	}
	sort.Float64s(times)
	out := times[:1]
	for _, t := range times[1:] {
		if t != out[len(out)-1] {
			out = append(out, t)
		}
	}
	return out
}
