package tonal

import (
	"math"
	"testing"
)

func notesOf(names ...string) []Note {
	notes := make([]Note, len(names))
	for i, name := range names {
		n, err := ParseNote(name)
		if err != nil {
			panic(err)
		}
		notes[i] = n
	}
	return notes
}

func TestGenerateScaleKnownScales(t *testing.T) {
	tests := []struct {
		root  Note
		scale string
		want  []Note
	}{
		{C, "Major", notesOf("C", "D", "E", "F", "G", "A", "B", "C")},
		{A, "Natural Minor", notesOf("A", "B", "C", "D", "E", "F", "G", "A")},
		{A, "Harmonic Minor", notesOf("A", "B", "C", "D", "E", "F", "G#", "A")},
		{C, "Melodic Minor", notesOf("C", "D", "D#", "F", "G", "A", "B", "C")},
		{D, "Dorian", notesOf("D", "E", "F", "G", "A", "B", "C", "D")},
		{E, "Phrygian", notesOf("E", "F", "G", "A", "B", "C", "D", "E")},
		{F, "Lydian", notesOf("F", "G", "A", "B", "C", "D", "E", "F")},
		{G, "Mixolydian", notesOf("G", "A", "B", "C", "D", "E", "F", "G")},
		{B, "Locrian", notesOf("B", "C", "D", "E", "F", "G", "A", "B")},
	}

	for _, tt := range tests {
		def, err := ScaleByName(tt.scale)
		if err != nil {
			t.Fatalf("ScaleByName(%q): %v", tt.scale, err)
		}
		got := GenerateScale(tt.root, def.Intervals)
		if len(got) != len(tt.want) {
			t.Fatalf("%s %s: got %d notes, want %d", tt.root, tt.scale, len(got), len(tt.want))
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s %s: note %d = %s, want %s", tt.root, tt.scale, i, got[i], tt.want[i])
			}
		}
	}
}

func TestGenerateScaleClosesOnRoot(t *testing.T) {
	// All supported scales step through exactly 12 semitones
	for _, def := range Scales {
		sum := 0
		for _, step := range def.Intervals {
			sum += step
		}
		if sum != 12 {
			t.Errorf("%s intervals sum to %d, want 12", def.Name, sum)
		}

		for root := C; root <= B; root++ {
			scale := GenerateScale(root, def.Intervals)
			if scale[0] != root || scale[len(scale)-1] != root {
				t.Errorf("%s %s does not close on its root: %v", root, def.Name, scale)
			}
		}
	}
}

func TestGenerateScaleOpenIntervals(t *testing.T) {
	// Steps need not sum to 12; the final note then differs from the root
	scale := GenerateScale(C, []int{2, 2})
	want := notesOf("C", "D", "E")
	for i := range want {
		if scale[i] != want[i] {
			t.Fatalf("open walk note %d = %s, want %s", i, scale[i], want[i])
		}
	}
}

func TestGenerateScaleInvalidRootPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range root")
		}
	}()
	GenerateScale(Note(12), []int{2, 2, 1, 2, 2, 2, 1})
}

func TestNewProfileEqualWeights(t *testing.T) {
	for _, def := range Scales {
		for root := C; root <= B; root++ {
			scale := GenerateScale(root, def.Intervals)
			profile := NewProfile(scale)

			distinct := make(map[Note]bool)
			for _, n := range scale {
				distinct[n] = true
			}

			if s := profile.Sum(); math.Abs(s-1.0) > 1e-9 {
				t.Errorf("%s %s: profile sums to %v", root, def.Name, s)
			}

			want := 1.0 / float64(len(distinct))
			for pc := 0; pc < 12; pc++ {
				val := profile[pc]
				if distinct[Note(pc)] {
					if math.Abs(val-want) > 1e-12 {
						t.Errorf("%s %s: bin %d = %v, want %v", root, def.Name, pc, val, want)
					}
				} else if val != 0 {
					t.Errorf("%s %s: off-scale bin %d = %v, want 0", root, def.Name, pc, val)
				}
			}
		}
	}
}

func TestNewProfileCollapsesRepeats(t *testing.T) {
	// Root appears twice (start and wraparound) but counts once
	profile := NewProfile(notesOf("C", "C", "G", "C"))
	if math.Abs(profile[0]-0.5) > 1e-12 || math.Abs(profile[7]-0.5) > 1e-12 {
		t.Errorf("repeats must not double-count: C=%v G=%v", profile[0], profile[7])
	}
}

func TestParseNote(t *testing.T) {
	n, err := ParseNote("F#")
	if err != nil || n != FSharp {
		t.Errorf("ParseNote(F#) = %v, %v", n, err)
	}
	if _, err := ParseNote("H"); err == nil {
		t.Error("expected error for unknown note name")
	}
}

func TestScaleCategories(t *testing.T) {
	keys := map[string]bool{"Major": true, "Natural Minor": true, "Harmonic Minor": true, "Melodic Minor": true}

	for _, def := range Scales {
		want := CategoryMode
		if keys[def.Name] {
			want = CategoryKey
		}
		if def.Category != want {
			t.Errorf("%s categorized as %s, want %s", def.Name, def.Category, want)
		}
	}
}

func TestNewTemplateTable(t *testing.T) {
	table := NewTemplateTable()
	if table.Len() != 108 {
		t.Fatalf("template table has %d entries, want 108", table.Len())
	}

	// Root-indexed lookup: template (Major, G) is the G major profile
	profile := table.Profile(0, G)
	for _, name := range []string{"G", "A", "B", "C", "D", "E", "F#"} {
		n, _ := ParseNote(name)
		if math.Abs(profile[n]-1.0/7.0) > 1e-12 {
			t.Errorf("G major template bin %s = %v, want 1/7", name, profile[n])
		}
	}
}
