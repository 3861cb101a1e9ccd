package spectral

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-clave/algorithms/windowing"
	"github.com/RyanBlaney/sonido-clave/logging"
)

// Default analysis parameters: 4096-sample windows with 50% overlap
const (
	DefaultWindowSize = 4096
	DefaultHopSize    = 2048
)

// SpectrumFrame holds a one-sided averaged magnitude spectrum.
// Frequencies and Magnitudes have equal length windowSize/2+1;
// bin k sits at k*sampleRate/windowSize Hz.
type SpectrumFrame struct {
	Frequencies []float64 `json:"frequencies"`
	Magnitudes  []float64 `json:"magnitudes"`
	SampleRate  int       `json:"sample_rate"`
	WindowSize  int       `json:"window_size"`
	HopSize     int       `json:"hop_size"`
	NumSegments int       `json:"num_segments"`
}

// Analyzer computes averaged magnitude spectra from mono PCM using
// overlapping Hann-windowed FFT segments.
type Analyzer struct {
	windowSize int
	hopSize    int
	window     *windowing.Hann
	fft        *FFT
}

// NewAnalyzer creates an analyzer with the default window and hop sizes
func NewAnalyzer() *Analyzer {
	a, _ := NewAnalyzerWithParams(DefaultWindowSize, DefaultHopSize)
	return a
}

// NewAnalyzerWithParams creates an analyzer with custom segmentation parameters
func NewAnalyzerWithParams(windowSize, hopSize int) (*Analyzer, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size must be positive: %d", windowSize)
	}
	if hopSize <= 0 {
		return nil, fmt.Errorf("hop size must be positive: %d", hopSize)
	}

	return &Analyzer{
		windowSize: windowSize,
		hopSize:    hopSize,
		window:     windowing.NewPeriodicHann(windowSize),
		fft:        NewFFT(),
	}, nil
}

// WindowSize returns the segment length in samples
func (a *Analyzer) WindowSize() int {
	return a.windowSize
}

// HopSize returns the segment advance in samples
func (a *Analyzer) HopSize() int {
	return a.hopSize
}

// Analyze splits the samples into overlapping windowed segments, averages
// the one-sided FFT magnitudes across segments, and returns the result.
//
// Input shorter than one window is not an error: the analyzer logs a
// warning and returns an all-zero spectrum, which downstream folding and
// classification handle deterministically.
func (a *Analyzer) Analyze(samples []float64, sampleRate int) *SpectrumFrame {
	logger := logging.WithFields(logging.Fields{
		"component": "spectral_analyzer",
		"function":  "Analyze",
	})

	freqBins := a.windowSize/2 + 1

	frame := &SpectrumFrame{
		Frequencies: make([]float64, freqBins),
		Magnitudes:  make([]float64, freqBins),
		SampleRate:  sampleRate,
		WindowSize:  a.windowSize,
		HopSize:     a.hopSize,
	}

	for k := range frame.Frequencies {
		frame.Frequencies[k] = float64(k) * float64(sampleRate) / float64(a.windowSize)
	}

	numSegments := 0
	segment := make([]float64, a.windowSize)

	for start := 0; start+a.windowSize <= len(samples); start += a.hopSize {
		copy(segment, samples[start:start+a.windowSize])

		if err := a.window.ApplyInPlace(segment); err != nil {
			logger.Error(err, "Windowing failed")
			continue
		}

		spectrum := a.fft.Compute(segment)
		for k := 0; k < freqBins; k++ {
			frame.Magnitudes[k] += cmplx.Abs(spectrum[k])
		}
		numSegments++
	}

	if numSegments == 0 {
		logger.Warn("Not enough samples for a full analysis window", logging.Fields{
			"samples":     len(samples),
			"window_size": a.windowSize,
		})
		return frame
	}

	floats.Scale(1.0/float64(numSegments), frame.Magnitudes)
	frame.NumSegments = numSegments

	logger.Debug("Averaged magnitude spectrum computed", logging.Fields{
		"segments":    numSegments,
		"freq_bins":   freqBins,
		"sample_rate": sampleRate,
	})

	return frame
}
