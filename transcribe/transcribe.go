package transcribe

import (
	"fmt"

	"github.com/cwbudde/algo-transcribe/transcribe/notes"
	"github.com/cwbudde/algo-transcribe/transcribe/onset"
	"github.com/cwbudde/algo-transcribe/transcribe/pitchtrack"
	"github.com/cwbudde/algo-transcribe/transcribe/quantize"
)

// Result holds the output of every pipeline stage for one recording.
type Result struct {
	// Boundaries are the note boundary times in seconds.
	Boundaries []float64
	// Raw are the aggregated notes before quantization.
	Raw []notes.RawNote
	// Notes are the quantized notes in concert pitch.
	Notes []quantize.Note
}

// Run transcribes a completed recording: the audio buffer and its pitch
// track are segmented into boundaries, aggregated into raw notes, and
// quantized against the given tempo context. Empty input yields an empty
// result and no error.
//
// The audio buffer may be nil when no recording is available; segmentation
// then relies on the pitch-change fallback alone.
func Run(audio []float64, track pitchtrack.Track, tempo quantize.TempoContext, opts ...Option) (Result, error) {
	cfg := ApplyOptions(opts...)

	if err := tempo.Validate(); err != nil {
		return Result{}, err
	}
	if err := track.Validate(); err != nil {
		return Result{}, err
	}

	if cfg.ConfidenceThreshold > 0 {
		track = track.FilterConfidence(cfg.ConfidenceThreshold)
	}
	if cfg.SmoothingWindow > 0 {
		track = track.SmoothFrequencies(cfg.SmoothingWindow)
	}

	det := cfg.detector
	if !cfg.detectorSet {
		var err error
		det, err = onset.NewSpectralFlux(onset.DefaultConfig())
		if err != nil {
			return Result{}, fmt.Errorf("transcribe: %w", err)
		}
	}

	boundaries, err := onset.Segment(audio, cfg.SampleRate, track, det)
	if err != nil {
		return Result{}, fmt.Errorf("transcribe: %w", err)
	}

	raw := notes.Aggregate(track, boundaries, notes.Config{MinDuration: cfg.MinNoteDuration})

	quantized, err := quantize.Apply(raw, tempo, quantize.Config{
		Strength:     cfg.Strength,
		Subdivisions: cfg.Subdivisions,
		MinDuration:  cfg.MinNoteDuration,
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Boundaries: boundaries,
		Raw:        raw,
		Notes:      quantized,
	}, nil
}

// Pitches returns the MIDI pitch of every quantized note, in order.
func (r Result) Pitches() []int {
	out := make([]int, len(r.Notes))
	for i, n := range r.Notes {
		out[i] = n.Pitch
	}
	return out
}
