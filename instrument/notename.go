package instrument

import "fmt"

var noteOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// ParseNoteName converts a scientific note name such as "C4", "F#3", "Bb1"
// or "C♯4" to its MIDI note number (C4 = 60). Accidentals may be '#', 'b',
// '♯' or '♭'; octaves range from -1 upward.
func ParseNoteName(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("empty note name")
	}

	offset, ok := noteOffsets[name[0]]
	if !ok {
		return 0, fmt.Errorf("invalid note name %q", name)
	}

	rest := name[1:]
	switch {
	case len(rest) > 0 && rest[0] == '#':
		offset++
		rest = rest[1:]
	case len(rest) > 0 && rest[0] == 'b':
		offset--
		rest = rest[1:]
	case len(rest) >= 3 && (rest[:3] == "♯" || rest[:3] == "♭"):
		if rest[:3] == "♯" {
			offset++
		} else {
			offset--
		}
		rest = rest[3:]
	}

	var octave int
	if _, err := fmt.Sscanf(rest, "%d", &octave); err != nil {
		return 0, fmt.Errorf("invalid note name %q: missing octave", name)
	}

	midi := (octave+1)*12 + offset
	if midi < 0 || midi > 127 {
		return 0, fmt.Errorf("note %q outside the MIDI range", name)
	}
	return midi, nil
}

// MIDIRange converts a note-name range to inclusive MIDI bounds.
func (r Range) MIDIRange() (low, high int, err error) {
	low, err = ParseNoteName(r.Lowest)
	if err != nil {
		return 0, 0, err
	}
	high, err = ParseNoteName(r.Highest)
	if err != nil {
		return 0, 0, err
	}
	if low > high {
		return 0, 0, fmt.Errorf("range %s-%s is inverted", r.Lowest, r.Highest)
	}
	return low, high, nil
}
