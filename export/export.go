// Package export hands transcription results to external score consumers.
//
// Only Standard MIDI File output lives here; MusicXML and PDF rendering are
// owned by downstream collaborators.
package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/cwbudde/algo-transcribe/transcribe/quantize"
)

// ticksPerQuarter is the SMF resolution used for all exports.
const ticksPerQuarter = 960

// event is a scheduled note on/off at an absolute tick.
type event struct {
	tick  uint32
	off   bool
	key   uint8
	vel   uint8
	order int
}

// WriteSMF writes the quantized notes as a single-track Standard MIDI File
// with tempo, meter and program change events. Note velocities are scaled
// from the note confidences. Pitches outside the MIDI range 0..127 are
// rejected; transpose before exporting if the written part runs past the
// staff.
func WriteSMF(w io.Writer, notes []quantize.Note, tempo quantize.TempoContext, program uint8) error {
	if err := tempo.Validate(); err != nil {
		return err
	}
	if program > 127 {
		return fmt.Errorf("export: MIDI program out of range: %d", program)
	}

	events := make([]event, 0, 2*len(notes))
	for i, n := range notes {
		if n.Pitch < 0 || n.Pitch > 127 {
			return fmt.Errorf("export: note %d pitch out of MIDI range: %d", i, n.Pitch)
		}
		on := beatsToTicks(n.StartBeat)
		off := beatsToTicks(n.StartBeat + n.DurationBeats)
		if off <= on {
			off = on + 1
		}
		key := uint8(n.Pitch)
		events = append(events,
			event{tick: on, key: key, vel: velocity(n.Confidence), order: i},
			event{tick: off, off: true, key: key, order: i},
		)
	}
	sortEvents(events)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(tempo.BPM))
	tr.Add(0, smf.MetaMeter(uint8(tempo.Meter.Numerator), uint8(tempo.Meter.Denominator)))
	tr.Add(0, midi.ProgramChange(0, program))

	var cursor uint32
	for _, ev := range events {
		delta := ev.tick - cursor
		cursor = ev.tick
		if ev.off {
			tr.Add(delta, midi.NoteOff(0, ev.key))
		} else {
			tr.Add(delta, midi.NoteOn(0, ev.key, ev.vel))
		}
	}
	tr.Close(0)
	s.Add(tr)

	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// SaveSMF writes the notes to a .mid file at path.
func SaveSMF(path string, notes []quantize.Note, tempo quantize.TempoContext, program uint8) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := WriteSMF(f, notes, tempo, program); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// sortEvents orders by tick, note-offs first at equal ticks so monophonic
// lines never stack, then by input order for determinism.
func sortEvents(events []event) {
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.tick != b.tick {
			return a.tick < b.tick
		}
		if a.off != b.off {
			return a.off
		}
		return a.order < b.order
	})
}

func beatsToTicks(beats float64) uint32 {
	if beats < 0 {
		return 0
	}
	return uint32(math.Round(beats * ticksPerQuarter))
}

// velocity maps a 0..1 confidence onto MIDI velocity 1..127.
func velocity(confidence float64) uint8 {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return uint8(math.Round(confidence*126)) + 1
}
