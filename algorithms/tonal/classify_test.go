package tonal

import (
	"math"
	"testing"

	"github.com/RyanBlaney/sonido-clave/algorithms/chroma"
)

func newTestClassifier() *Classifier {
	return NewClassifier(NewTemplateTable())
}

func TestClassifySingleToneShortcut(t *testing.T) {
	var observed chroma.Profile
	observed[9] = 0.9 // A
	observed[2] = 0.1

	result := newTestClassifier().Classify(observed)

	if result.Kind != KindSingleTone {
		t.Fatalf("kind = %s, want Single Tone", result.Kind)
	}
	if result.Root != A {
		t.Errorf("root = %s, want A", result.Root)
	}
	if result.Candidates != nil {
		t.Errorf("single-tone shortcut must bypass template scoring")
	}
}

func TestClassifyThresholdNotInclusive(t *testing.T) {
	// Exactly 0.4 in one class must not trigger the shortcut
	var observed chroma.Profile
	observed[0] = 0.4
	observed[4] = 0.3
	observed[7] = 0.3

	result := newTestClassifier().Classify(observed)
	if result.Kind == KindSingleTone {
		t.Fatal("max == threshold must fall through to template scoring")
	}
}

func TestClassifyCMajorProfile(t *testing.T) {
	// Observed profile identical to the C major template
	observed := NewProfile(GenerateScale(C, Scales[0].Intervals))

	result := newTestClassifier().Classify(observed)

	if result.Kind != KindKey || result.Root != C || result.Scale != "Major" {
		t.Fatalf("got %s, want Key: C Major", result)
	}

	// Score is the plain dot product: 7 * (1/7)^2 = 1/7
	if math.Abs(result.Score-1.0/7.0) > 1e-12 {
		t.Errorf("score = %v, want 1/7", result.Score)
	}

	// The C-rooted key scales must all score strictly lower than C Major
	for _, cand := range result.Candidates {
		if cand.Root == C && cand.Category == CategoryKey && cand.Scale != "Major" {
			if cand.Score >= result.Score {
				t.Errorf("C %s scored %v, expected strictly below C Major's %v",
					cand.Scale, cand.Score, result.Score)
			}
		}
	}
}

func TestClassifyRelativeModesTieToLowestRoot(t *testing.T) {
	// The seven modes of the C major pitch-class set share one template set
	// and tie exactly; the chromatic tie-break must pick root C.
	observed := NewProfile(GenerateScale(C, Scales[0].Intervals))

	candidates := newTestClassifier().Rank(observed)

	top := candidates[0]
	if top.Root != C || top.Scale != "Major" {
		t.Fatalf("top candidate = %s %s, want C Major", top.Root, top.Scale)
	}

	// A Natural Minor ties on score but loses the tie-break
	for _, cand := range candidates {
		if cand.Root == A && cand.Scale == "Natural Minor" {
			if math.Abs(cand.Score-top.Score) > 1e-12 {
				t.Errorf("A Natural Minor score = %v, want tie with %v", cand.Score, top.Score)
			}
		}
	}
}

func TestClassifyZeroProfileDefaultsToCMajor(t *testing.T) {
	var observed chroma.Profile

	result := newTestClassifier().Classify(observed)

	if result.Kind != KindKey || result.Root != C || result.Scale != "Major" {
		t.Fatalf("silence classified as %s, want Key: C Major", result)
	}
	if result.Score != 0 {
		t.Errorf("silence score = %v, want 0", result.Score)
	}
	if len(result.Candidates) != 108 {
		t.Errorf("expected full 108-candidate ranking, got %d", len(result.Candidates))
	}
}

func TestRankOrderingDeterministic(t *testing.T) {
	var observed chroma.Profile
	for pc := range observed {
		observed[pc] = 1.0 / 12.0
	}

	c := newTestClassifier()
	first := c.Rank(observed)
	second := c.Rank(observed)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("ranking not reproducible at position %d", i)
		}
	}

	// A uniform profile ties everywhere; ranking must ascend by root index
	// within the tie and keep scale declaration order within each root.
	if first[0].Root != C || first[0].Scale != "Major" {
		t.Errorf("uniform profile top candidate = %s %s, want C Major", first[0].Root, first[0].Scale)
	}
	for i := 1; i < len(first); i++ {
		if first[i].Root < first[i-1].Root {
			t.Fatalf("tie ordering broken at %d: %s after %s", i, first[i].Root, first[i-1].Root)
		}
	}
}

func TestClassifyModeResult(t *testing.T) {
	// The G major pitch-class set is shared by its seven relative modes,
	// which all tie on the dot product. The chromatically lowest root in
	// that family is C, whose scale over the set is Lydian.
	observed := NewProfile(GenerateScale(G, Scales[0].Intervals))

	result := newTestClassifier().Classify(observed)

	if result.Kind != KindMode {
		t.Fatalf("kind = %s, want Mode", result.Kind)
	}
	if result.Root != C || result.Scale != "Lydian" {
		t.Errorf("got %s %s, want C Lydian", result.Root, result.Scale)
	}
}

func TestClassifyHarmonicMinor(t *testing.T) {
	// The harmonic minor set is not a rotation of any major scale, so it
	// wins outright without relying on the tie-break.
	observed := NewProfile(GenerateScale(A, Scales[2].Intervals))

	result := newTestClassifier().Classify(observed)

	if result.Kind != KindKey || result.Root != A || result.Scale != "Harmonic Minor" {
		t.Fatalf("got %s, want Key: A Harmonic Minor", result)
	}
}
