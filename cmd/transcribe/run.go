package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-transcribe/export"
	"github.com/cwbudde/algo-transcribe/instrument"
	"github.com/cwbudde/algo-transcribe/transcribe"
	"github.com/cwbudde/algo-transcribe/transcribe/key"
	"github.com/cwbudde/algo-transcribe/transcribe/pitchtrack"
	"github.com/cwbudde/algo-transcribe/transcribe/quantize"
	"github.com/cwbudde/algo-transcribe/transcribe/transpose"
)

var runFlags struct {
	pitchPath    string
	audioPath    string
	outPath      string
	tempoBPM     float64
	meter        string
	strength     float64
	minDuration  float64
	instrumentID string
	written      bool
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.pitchPath, "pitch", "", "pitch track JSON file (required)")
	f.StringVar(&runFlags.audioPath, "audio", "", "mono WAV file for onset detection (optional)")
	f.StringVar(&runFlags.outPath, "out", "", "output file: .json or .mid (default: JSON to stdout)")
	f.Float64Var(&runFlags.tempoBPM, "tempo", 120, "tempo in BPM")
	f.StringVar(&runFlags.meter, "meter", "4/4", "time signature, e.g. 3/4")
	f.Float64Var(&runFlags.strength, "strength", quantize.DefaultStrength, "quantization strength in [0,1]")
	f.Float64Var(&runFlags.minDuration, "min-duration", 0.1, "minimum note duration in seconds")
	f.StringVar(&runFlags.instrumentID, "instrument", "", "instrument id for transposition (see 'instruments')")
	f.BoolVar(&runFlags.written, "written", false, "emit written pitch instead of concert pitch")
	runCmd.MarkFlagRequired("pitch")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Transcribe a pitch contour into quantized notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline()
	},
}

// noteJSON is the note interchange format handed to score consumers.
type noteJSON struct {
	Start         float64 `json:"start"`
	Duration      float64 `json:"duration"`
	StartBeat     float64 `json:"startBeat"`
	DurationBeats float64 `json:"durationBeats"`
	Pitch         int     `json:"pitch"`
	NoteName      string  `json:"noteName"`
	Confidence    float64 `json:"confidence"`
}

type transcriptionJSON struct {
	Instrument string     `json:"instrument,omitempty"`
	Clef       string     `json:"clef,omitempty"`
	Key        string     `json:"key"`
	TempoBPM   float64    `json:"tempoBpm"`
	Meter      string     `json:"meter"`
	Notes      []noteJSON `json:"notes"`
}

func parseMeter(s string) (quantize.Meter, error) {
	var m quantize.Meter
	if _, err := fmt.Sscanf(s, "%d/%d", &m.Numerator, &m.Denominator); err != nil {
		return m, fmt.Errorf("invalid meter %q: want e.g. 4/4", s)
	}
	return m, nil
}

func runPipeline() error {
	track, err := readTrack(runFlags.pitchPath)
	if err != nil {
		return err
	}

	var audio []float64
	sampleRate := 44100.0
	if runFlags.audioPath != "" {
		audio, sampleRate, err = readWAV(runFlags.audioPath)
		if err != nil {
			return err
		}
	}

	meter, err := parseMeter(runFlags.meter)
	if err != nil {
		return err
	}
	tempo := quantize.TempoContext{BPM: runFlags.tempoBPM, Meter: meter}

	res, err := transcribe.Run(audio, track, tempo,
		transcribe.WithSampleRate(sampleRate),
		transcribe.WithStrength(runFlags.strength),
		transcribe.WithMinNoteDuration(runFlags.minDuration),
	)
	if err != nil {
		return err
	}

	out := transcriptionJSON{
		Key:      key.Detect(res.Pitches()).Name,
		TempoBPM: tempo.BPM,
		Meter:    runFlags.meter,
		Notes:    make([]noteJSON, 0, len(res.Notes)),
	}

	notes := res.Notes
	program := 0
	if runFlags.instrumentID != "" {
		catalog, err := instrument.Load()
		if err != nil {
			return err
		}
		inst, ok := catalog.Get(runFlags.instrumentID)
		if !ok {
			return fmt.Errorf("unknown instrument %q", runFlags.instrumentID)
		}
		out.Instrument = inst.ID
		out.Clef = catalog.PreferredClefForPitch(inst.ID, int(track.AverageMIDI()+0.5))
		program = inst.MIDIProgram
		if runFlags.written {
			notes = transpose.NotesToWritten(notes, inst.TranspositionSemitones)
		}
	}

	for _, n := range notes {
		out.Notes = append(out.Notes, noteJSON{
			Start:         n.Start,
			Duration:      n.Duration,
			StartBeat:     n.StartBeat,
			DurationBeats: n.DurationBeats,
			Pitch:         n.Pitch,
			NoteName:      pitchtrack.NoteName(n.Pitch),
			Confidence:    n.Confidence,
		})
	}

	switch {
	case strings.HasSuffix(runFlags.outPath, ".mid"),
		strings.HasSuffix(runFlags.outPath, ".midi"):
		return export.SaveSMF(runFlags.outPath, notes, tempo, uint8(program))
	case runFlags.outPath != "":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(runFlags.outPath, data, 0o644)
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
}
