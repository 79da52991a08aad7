package instrument

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Clef names used by the catalog.
const (
	ClefTreble = "treble"
	ClefBass   = "bass"
	ClefAlto   = "alto"
	ClefTenor  = "tenor"
)

// Range is a pitch span given as scientific note names.
type Range struct {
	Lowest  string `json:"lowest"`
	Highest string `json:"highest"`
}

// Instrument is one row of the catalog.
//
// TranspositionSemitones follows the sounding direction: a horn in F sounds
// a fifth below written, so its value is -7 and
// written = concert - TranspositionSemitones.
type Instrument struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Family                 string `json:"family"`
	TranspositionSemitones int    `json:"transposition_semitones"`
	// Clefs is ordered by preference and never empty after loading.
	Clefs          []string `json:"clefs"`
	SoundingRange  Range    `json:"sounding_range"`
	WrittenRange   Range    `json:"written_range"`
	PreferredRange Range    `json:"preferred_range"`
	MIDIProgram    int      `json:"midi_program"`
}

//go:embed instruments.json
var embeddedTable []byte

// Catalog is the immutable instrument metadata table, loaded once at
// startup and read-only afterwards.
type Catalog struct {
	byID map[string]Instrument
	all  []Instrument
}

// Load decodes the embedded instrument table.
func Load() (*Catalog, error) {
	return LoadFrom(bytes.NewReader(embeddedTable))
}

// LoadFrom decodes a catalog from JSON. Entries with an empty clef list
// get the treble fallback; duplicate ids, unparseable ranges and MIDI
// programs outside 0..127 are rejected.
func LoadFrom(r io.Reader) (*Catalog, error) {
	var table struct {
		Instruments []Instrument `json:"instruments"`
	}
	if err := json.NewDecoder(r).Decode(&table); err != nil {
		return nil, fmt.Errorf("instrument table: %w", err)
	}

	c := &Catalog{byID: make(map[string]Instrument, len(table.Instruments))}
	for _, inst := range table.Instruments {
		if inst.ID == "" {
			return nil, fmt.Errorf("instrument table: entry %q has no id", inst.Name)
		}
		if _, dup := c.byID[inst.ID]; dup {
			return nil, fmt.Errorf("instrument table: duplicate id %q", inst.ID)
		}
		if inst.MIDIProgram < 0 || inst.MIDIProgram > 127 {
			return nil, fmt.Errorf("instrument table: %s: MIDI program out of range: %d", inst.ID, inst.MIDIProgram)
		}
		for _, rng := range []Range{inst.SoundingRange, inst.WrittenRange, inst.PreferredRange} {
			for _, name := range []string{rng.Lowest, rng.Highest} {
				if _, err := ParseNoteName(name); err != nil {
					return nil, fmt.Errorf("instrument table: %s: %w", inst.ID, err)
				}
			}
		}
		if len(inst.Clefs) == 0 {
			inst.Clefs = []string{ClefTreble}
		}

		c.byID[inst.ID] = inst
		c.all = append(c.all, inst)
	}

	sort.Slice(c.all, func(i, j int) bool {
		if c.all[i].Family != c.all[j].Family {
			return c.all[i].Family < c.all[j].Family
		}
		return c.all[i].Name < c.all[j].Name
	})
	return c, nil
}

// Get looks up an instrument by id.
func (c *Catalog) Get(id string) (Instrument, bool) {
	inst, ok := c.byID[id]
	return inst, ok
}

// Transposition returns the transposition of the instrument in semitones,
// or 0 for an unknown id.
func (c *Catalog) Transposition(id string) int {
	return c.byID[id].TranspositionSemitones
}

// All returns every instrument sorted by family, then name. The returned
// slice is shared; callers must not modify it.
func (c *Catalog) All() []Instrument {
	return c.all
}

// ByFamily returns the instruments of one family, sorted by name.
func (c *Catalog) ByFamily(family string) []Instrument {
	var out []Instrument
	for _, inst := range c.all {
		if inst.Family == family {
			out = append(out, inst)
		}
	}
	return out
}

// Families returns the sorted list of distinct families.
func (c *Catalog) Families() []string {
	var out []string
	for _, inst := range c.all {
		if len(out) == 0 || out[len(out)-1] != inst.Family {
			out = append(out, inst.Family)
		}
	}
	return out
}
