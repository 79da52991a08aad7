package instrument

// Pitch thresholds for the clef heuristic, in MIDI note numbers.
const (
	trebleFloor = 60 // middle C
	altoFloor   = 48
	altoCeil    = 67
	tenorFloor  = 50
	tenorCeil   = 64
)

// PreferredClef returns the instrument's preferred clef without a pitch
// hint: the first listed clef, or treble for an unknown id.
func (c *Catalog) PreferredClef(id string) string {
	inst, ok := c.byID[id]
	if !ok || len(inst.Clefs) == 0 {
		return ClefTreble
	}
	return inst.Clefs[0]
}

// PreferredClefForPitch returns the preferred clef given the average MIDI
// pitch of the material. For instruments with a single clef that clef is
// returned directly; otherwise the rules run in fixed order and the first
// match wins: treble for pitches at or above middle C, bass below it, then
// the alto and tenor mid-range bands, then the first listed clef.
func (c *Catalog) PreferredClefForPitch(id string, avgPitchMIDI int) string {
	inst, ok := c.byID[id]
	if !ok || len(inst.Clefs) == 0 {
		return ClefTreble
	}
	if len(inst.Clefs) == 1 {
		return inst.Clefs[0]
	}

	switch {
	case avgPitchMIDI >= trebleFloor && hasClef(inst, ClefTreble):
		return ClefTreble
	case avgPitchMIDI < trebleFloor && hasClef(inst, ClefBass):
		return ClefBass
	case avgPitchMIDI >= altoFloor && avgPitchMIDI < altoCeil && hasClef(inst, ClefAlto):
		return ClefAlto
	case avgPitchMIDI >= tenorFloor && avgPitchMIDI < tenorCeil && hasClef(inst, ClefTenor):
		return ClefTenor
	}
	return inst.Clefs[0]
}

func hasClef(inst Instrument, clef string) bool {
	for _, c := range inst.Clefs {
		if c == clef {
			return true
		}
	}
	return false
}
