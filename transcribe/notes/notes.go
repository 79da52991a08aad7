// Package notes groups pitch frames between note boundaries into discrete
// raw notes.
package notes

import (
	"math"

	"github.com/cwbudde/algo-transcribe/transcribe/pitchtrack"
)

// DefaultMinDuration is the shortest note, in seconds, that survives
// aggregation.
const DefaultMinDuration = 0.1

// RawNote is a discrete note before rhythm quantization.
type RawNote struct {
	Start      float64 // seconds
	Duration   float64 // seconds
	Pitch      int     // MIDI note number
	Confidence float64 // mean confidence of the constituent frames
}

// Config holds aggregation parameters.
type Config struct {
	// MinDuration drops notes shorter than this many seconds.
	MinDuration float64
}

// DefaultConfig returns the default aggregation parameters.
func DefaultConfig() Config {
	return Config{MinDuration: DefaultMinDuration}
}

// Aggregate emits one raw note per adjacent boundary pair [b, next). A
// closing boundary at the last frame's time is appended when absent.
// Intervals containing no frames are skipped; no rest is synthesized for
// them. The note pitch is the confidence-weighted mean MIDI number rounded
// to the nearest integer (unweighted when the summed confidence is zero),
// the note confidence the unweighted mean. Notes shorter than
// cfg.MinDuration are dropped.
func Aggregate(track pitchtrack.Track, boundaries []float64, cfg Config) []RawNote {
	if len(track) == 0 || len(boundaries) == 0 {
		return nil
	}

	last := track[len(track)-1].Time
	if boundaries[len(boundaries)-1] != last {
		boundaries = append(append([]float64(nil), boundaries...), last)
	}

	var out []RawNote
	for i := 0; i+1 < len(boundaries); i++ {
		start := boundaries[i]
		end := boundaries[i+1]

		duration := end - start
		if duration < cfg.MinDuration {
			continue
		}

		var (
			frames      int
			weightedSum float64
			plainSum    float64
			confSum     float64
		)
		for _, f := range track {
			if f.Time < start || f.Time >= end {
				continue
			}
			midi := f.MIDI()
			frames++
			weightedSum += midi * f.Confidence
			plainSum += midi
			confSum += f.Confidence
		}
		if frames == 0 {
			continue
		}

		pitch := plainSum / float64(frames)
		if confSum > 0 {
			pitch = weightedSum / confSum
		}

		out = append(out, RawNote{
			Start:      start,
			Duration:   duration,
			Pitch:      int(math.Round(pitch)),
			Confidence: confSum / float64(frames),
		})
	}
	return out
}
