package instrument

import (
	"sort"
	"strings"
	"testing"
)

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestLoadEmbeddedTable(t *testing.T) {
	c := loadCatalog(t)
	if len(c.All()) < 30 {
		t.Fatalf("catalog has %d instruments, want at least 30", len(c.All()))
	}
}

func TestGetKnownInstruments(t *testing.T) {
	c := loadCatalog(t)

	horn, ok := c.Get("horn_f")
	if !ok {
		t.Fatalf("horn_f not found")
	}
	if horn.TranspositionSemitones != -7 {
		t.Fatalf("horn_f transposition = %d, want -7", horn.TranspositionSemitones)
	}
	if len(horn.Clefs) != 2 || horn.Clefs[0] != ClefTreble || horn.Clefs[1] != ClefBass {
		t.Fatalf("horn_f clefs = %v, want [treble bass]", horn.Clefs)
	}

	violin, ok := c.Get("violin")
	if !ok {
		t.Fatalf("violin not found")
	}
	if violin.TranspositionSemitones != 0 {
		t.Fatalf("violin transposition = %d, want 0", violin.TranspositionSemitones)
	}

	if _, ok := c.Get("theremin"); ok {
		t.Fatalf("unexpected instrument found")
	}
}

func TestTransposition(t *testing.T) {
	c := loadCatalog(t)
	if got := c.Transposition("clarinet_bb"); got != -2 {
		t.Fatalf("clarinet_bb transposition = %d, want -2", got)
	}
	if got := c.Transposition("unknown"); got != 0 {
		t.Fatalf("unknown transposition = %d, want 0", got)
	}
}

func TestAllSortedByFamilyThenName(t *testing.T) {
	c := loadCatalog(t)
	all := c.All()
	sorted := sort.SliceIsSorted(all, func(i, j int) bool {
		if all[i].Family != all[j].Family {
			return all[i].Family < all[j].Family
		}
		return all[i].Name < all[j].Name
	})
	if !sorted {
		t.Fatalf("All() is not sorted by family then name")
	}
}

func TestByFamily(t *testing.T) {
	c := loadCatalog(t)
	brass := c.ByFamily("Brass")
	if len(brass) == 0 {
		t.Fatalf("no brass instruments")
	}
	for _, inst := range brass {
		if inst.Family != "Brass" {
			t.Fatalf("ByFamily returned %s (%s)", inst.ID, inst.Family)
		}
	}
	if got := c.ByFamily("Gamelan"); len(got) != 0 {
		t.Fatalf("unknown family returned %v", got)
	}
}

func TestFamilies(t *testing.T) {
	c := loadCatalog(t)
	families := c.Families()
	if !sort.StringsAreSorted(families) {
		t.Fatalf("families not sorted: %v", families)
	}
	for _, want := range []string{"Brass", "Strings", "Woodwinds", "Percussion", "Keyboards"} {
		found := false
		for _, f := range families {
			if f == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("family %s missing from %v", want, families)
		}
	}
}

func TestPreferredClefNoHint(t *testing.T) {
	c := loadCatalog(t)

	// Multi-clef instrument: first listed clef.
	if got := c.PreferredClef("horn_f"); got != ClefTreble {
		t.Fatalf("horn_f clef = %q, want treble", got)
	}
	// Single clef.
	if got := c.PreferredClef("bass_trombone"); got != ClefBass {
		t.Fatalf("bass_trombone clef = %q, want bass", got)
	}
	// Unknown id falls back to treble.
	if got := c.PreferredClef("theremin"); got != ClefTreble {
		t.Fatalf("unknown clef = %q, want treble", got)
	}
}

func TestPreferredClefForPitch(t *testing.T) {
	c := loadCatalog(t)

	// horn_f lists treble and bass.
	cases := []struct {
		pitch int
		want  string
	}{
		{55, ClefBass},
		{65, ClefTreble},
		{60, ClefTreble}, // middle C goes to treble
		{59, ClefBass},
	}
	for _, tc := range cases {
		if got := c.PreferredClefForPitch("horn_f", tc.pitch); got != tc.want {
			t.Fatalf("horn_f at %d = %q, want %q", tc.pitch, got, tc.want)
		}
	}

	// Single-clef instrument ignores the hint entirely.
	if got := c.PreferredClefForPitch("flute", 40); got != ClefTreble {
		t.Fatalf("flute at 40 = %q, want treble", got)
	}
	if got := c.PreferredClefForPitch("bass_trombone", 80); got != ClefBass {
		t.Fatalf("bass_trombone at 80 = %q, want bass", got)
	}

	// Viola lists alto then treble: high material picks treble, mid-range
	// material without a bass clef lands on alto.
	if got := c.PreferredClefForPitch("viola", 70); got != ClefTreble {
		t.Fatalf("viola at 70 = %q, want treble", got)
	}
	if got := c.PreferredClefForPitch("viola", 55); got != ClefAlto {
		t.Fatalf("viola at 55 = %q, want alto", got)
	}
}

func TestLoadFromRejectsBadTables(t *testing.T) {
	cases := map[string]string{
		"duplicate id": `{"instruments":[
			{"id":"x","name":"X","family":"F","clefs":["treble"],"sounding_range":{"lowest":"C2","highest":"C6"},"written_range":{"lowest":"C2","highest":"C6"},"preferred_range":{"lowest":"C3","highest":"C5"},"midi_program":0},
			{"id":"x","name":"X2","family":"F","clefs":["treble"],"sounding_range":{"lowest":"C2","highest":"C6"},"written_range":{"lowest":"C2","highest":"C6"},"preferred_range":{"lowest":"C3","highest":"C5"},"midi_program":0}]}`,
		"missing id": `{"instruments":[
			{"name":"X","family":"F","clefs":["treble"],"sounding_range":{"lowest":"C2","highest":"C6"},"written_range":{"lowest":"C2","highest":"C6"},"preferred_range":{"lowest":"C3","highest":"C5"},"midi_program":0}]}`,
		"bad program": `{"instruments":[
			{"id":"x","name":"X","family":"F","clefs":["treble"],"sounding_range":{"lowest":"C2","highest":"C6"},"written_range":{"lowest":"C2","highest":"C6"},"preferred_range":{"lowest":"C3","highest":"C5"},"midi_program":200}]}`,
		"bad range": `{"instruments":[
			{"id":"x","name":"X","family":"F","clefs":["treble"],"sounding_range":{"lowest":"H2","highest":"C6"},"written_range":{"lowest":"C2","highest":"C6"},"preferred_range":{"lowest":"C3","highest":"C5"},"midi_program":0}]}`,
	}
	for name, data := range cases {
		if _, err := LoadFrom(strings.NewReader(data)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadFromEmptyClefsFallback(t *testing.T) {
	data := `{"instruments":[
		{"id":"x","name":"X","family":"F","clefs":[],"sounding_range":{"lowest":"C2","highest":"C6"},"written_range":{"lowest":"C2","highest":"C6"},"preferred_range":{"lowest":"C3","highest":"C5"},"midi_program":0}]}`
	c, err := LoadFrom(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	inst, _ := c.Get("x")
	if len(inst.Clefs) != 1 || inst.Clefs[0] != ClefTreble {
		t.Fatalf("clefs = %v, want [treble]", inst.Clefs)
	}
}

func TestAllRangesAreConsistent(t *testing.T) {
	c := loadCatalog(t)
	for _, inst := range c.All() {
		sLow, sHigh, err := inst.SoundingRange.MIDIRange()
		if err != nil {
			t.Fatalf("%s sounding range: %v", inst.ID, err)
		}
		wLow, wHigh, err := inst.WrittenRange.MIDIRange()
		if err != nil {
			t.Fatalf("%s written range: %v", inst.ID, err)
		}
		// written = concert - transposition, applied to both endpoints.
		if wLow != sLow-inst.TranspositionSemitones || wHigh != sHigh-inst.TranspositionSemitones {
			t.Fatalf("%s written range %d-%d inconsistent with sounding %d-%d and transposition %d",
				inst.ID, wLow, wHigh, sLow, sHigh, inst.TranspositionSemitones)
		}
		if _, _, err := inst.PreferredRange.MIDIRange(); err != nil {
			t.Fatalf("%s preferred range: %v", inst.ID, err)
		}
	}
}
