package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-transcribe/transcribe/pitchtrack"
)

// frameJSON is one pitch frame in the interchange format:
// [{"time":0.0,"frequency":261.6,"confidence":0.9}, ...]
type frameJSON struct {
	Time       float64 `json:"time"`
	Frequency  float64 `json:"frequency"`
	Confidence float64 `json:"confidence"`
}

func framesToTrack(frames []frameJSON) pitchtrack.Track {
	track := make(pitchtrack.Track, len(frames))
	for i, f := range frames {
		track[i] = pitchtrack.Frame{Time: f.Time, Frequency: f.Frequency, Confidence: f.Confidence}
	}
	return track
}

// readTrack loads a pitch-track JSON file.
func readTrack(path string) (pitchtrack.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pitch track: %w", err)
	}
	var frames []frameJSON
	if err := json.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("pitch track %s: %w", path, err)
	}
	return framesToTrack(frames), nil
}

// readWAV decodes a mono WAV file into normalized float samples and its
// sample rate.
func readWAV(path string) ([]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("audio: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("audio %s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels != 1 {
		return nil, 0, fmt.Errorf("audio %s: only mono WAV input is supported", path)
	}

	return normalizeSamples(buf, dec.BitDepth), float64(buf.Format.SampleRate), nil
}

// normalizeSamples scales integer PCM to [-1, 1] floats.
func normalizeSamples(buf *audio.IntBuffer, bitDepth uint16) []float64 {
	scale := 1.0
	if bitDepth > 0 && bitDepth <= 32 {
		scale = 1 / float64(uint64(1)<<(bitDepth-1))
	}
	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) * scale
	}
	return samples
}
