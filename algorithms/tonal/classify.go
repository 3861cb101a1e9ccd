package tonal

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-clave/algorithms/chroma"
)

// DefaultSingleToneThreshold separates an isolated sustained tone from any
// plausible polyphonic scale profile; the largest diatonic template weight
// is 1/7, well below it. Empirical constant, kept as-is.
const DefaultSingleToneThreshold = 0.4

// ResultKind labels what the classifier detected
type ResultKind int

const (
	KindSingleTone ResultKind = iota
	KindKey
	KindMode
)

func (k ResultKind) String() string {
	switch k {
	case KindSingleTone:
		return "Single Tone"
	case KindKey:
		return "Key"
	case KindMode:
		return "Mode"
	default:
		return "Unknown"
	}
}

// Candidate is one scored (root, scale) pair from template matching
type Candidate struct {
	Root     Note          `json:"root"`
	Scale    string        `json:"scale"`
	Category ScaleCategory `json:"category"`
	Score    float64       `json:"score"`
}

// Result is the classification outcome. Scale is empty for single tones;
// Candidates carries the full ranking and is nil when the single-tone
// shortcut fired.
type Result struct {
	Kind       ResultKind  `json:"kind"`
	Root       Note        `json:"root"`
	Scale      string      `json:"scale,omitempty"`
	Score      float64     `json:"score"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

func (r Result) String() string {
	if r.Kind == KindSingleTone {
		return fmt.Sprintf("%s (Single Tone)", r.Root)
	}
	return fmt.Sprintf("%s: %s %s", r.Kind, r.Root, r.Scale)
}

// Classifier matches observed pitch-class profiles against a template table
type Classifier struct {
	table     *TemplateTable
	threshold float64
}

// NewClassifier creates a classifier with the default single-tone threshold
func NewClassifier(table *TemplateTable) *Classifier {
	return &Classifier{
		table:     table,
		threshold: DefaultSingleToneThreshold,
	}
}

// NewClassifierWithThreshold creates a classifier with a custom single-tone threshold
func NewClassifierWithThreshold(table *TemplateTable, threshold float64) *Classifier {
	return &Classifier{
		table:     table,
		threshold: threshold,
	}
}

// Classify selects the best root and scale for the observed profile.
//
// If one pitch class holds more than the single-tone threshold of the total
// mass, that class is reported directly as a single tone. Otherwise every
// template is scored with a plain dot product against the observed profile
// (deliberately not cosine similarity) and the candidates are ranked by
// score descending, ties broken by ascending chromatic root index and then
// by scale declaration order. Classification never fails: an all-zero
// profile scores 0 everywhere and the tie-break lands on C Major.
func (c *Classifier) Classify(observed chroma.Profile) Result {
	if maxVal, maxIdx := observed.Max(); maxVal > c.threshold {
		return Result{
			Kind:  KindSingleTone,
			Root:  Note(maxIdx),
			Score: maxVal,
		}
	}

	candidates := c.Rank(observed)
	best := candidates[0]

	kind := KindKey
	if best.Category == CategoryMode {
		kind = KindMode
	}

	return Result{
		Kind:       kind,
		Root:       best.Root,
		Scale:      best.Scale,
		Score:      best.Score,
		Candidates: candidates,
	}
}

// Rank scores the observed profile against every template and returns all
// candidates in the deterministic ranking order described on Classify.
func (c *Classifier) Rank(observed chroma.Profile) []Candidate {
	candidates := make([]Candidate, 0, c.table.Len())

	for si, def := range Scales {
		for root := C; root <= B; root++ {
			template := c.table.Profile(si, root)
			candidates = append(candidates, Candidate{
				Root:     root,
				Scale:    def.Name,
				Category: def.Category,
				Score:    floats.Dot(observed[:], template[:]),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Root < candidates[j].Root
	})

	return candidates
}
