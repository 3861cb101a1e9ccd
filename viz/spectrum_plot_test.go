package viz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/RyanBlaney/sonido-clave/algorithms/spectral"
)

func testFrame() *spectral.SpectrumFrame {
	a := spectral.NewAnalyzer()
	return a.Analyze(make([]float64, spectral.DefaultWindowSize), 44100)
}

func TestNoteLabelsSpacing(t *testing.T) {
	frame := testFrame()
	labels := NoteLabels(frame)

	if len(labels) == 0 {
		t.Fatal("expected at least one note label")
	}

	for i := 1; i < len(labels); i++ {
		if gap := labels[i].Freq - labels[i-1].Freq; gap <= 1000 {
			t.Errorf("labels %d and %d only %v Hz apart", i-1, i, gap)
		}
	}

	for _, l := range labels {
		if l.Freq < 20 || l.Freq > 20000 {
			t.Errorf("label at %v Hz outside the audible band", l.Freq)
		}
		if l.Note == "" {
			t.Errorf("empty note name at %v Hz", l.Freq)
		}
	}
}

func TestNoteLabelsFirstIsA(t *testing.T) {
	frame := &spectral.SpectrumFrame{
		Frequencies: []float64{10, 440, 2000},
		Magnitudes:  []float64{0, 1, 0},
	}

	labels := NoteLabels(frame)
	if len(labels) != 2 {
		t.Fatalf("got %d labels, want 2", len(labels))
	}
	if labels[0].Freq != 440 || labels[0].Note != "A" {
		t.Errorf("first label = %+v, want 440 Hz / A", labels[0])
	}
}

func TestSaveSpectrumPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spectrum.png")

	if err := SaveSpectrumPlot(testFrame(), path); err != nil {
		t.Fatalf("SaveSpectrumPlot: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("plot file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}
