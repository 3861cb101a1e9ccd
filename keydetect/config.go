package keydetect

import (
	"fmt"

	"github.com/RyanBlaney/sonido-clave/algorithms/chroma"
	"github.com/RyanBlaney/sonido-clave/algorithms/spectral"
	"github.com/RyanBlaney/sonido-clave/algorithms/tonal"
)

// Config bundles the fixed analysis parameters of the detection pipeline.
// The defaults reproduce the reference behavior; change them only for
// experimentation, not for matching published results.
type Config struct {
	WindowSize          int     `json:"window_size"`
	HopSize             int     `json:"hop_size"`
	MinFreq             float64 `json:"min_freq"`
	MaxFreq             float64 `json:"max_freq"`
	SingleToneThreshold float64 `json:"single_tone_threshold"`
}

// DefaultConfig returns the reference analysis parameters
func DefaultConfig() *Config {
	return &Config{
		WindowSize:          spectral.DefaultWindowSize,
		HopSize:             spectral.DefaultHopSize,
		MinFreq:             chroma.DefaultMinFreq,
		MaxFreq:             chroma.DefaultMaxFreq,
		SingleToneThreshold: tonal.DefaultSingleToneThreshold,
	}
}

// Validate checks the configuration for contract violations
func (c *Config) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("window size must be positive: %d", c.WindowSize)
	}
	if c.HopSize <= 0 {
		return fmt.Errorf("hop size must be positive: %d", c.HopSize)
	}
	if c.MinFreq < 0 || c.MaxFreq <= c.MinFreq {
		return fmt.Errorf("invalid fold range: %.1f-%.1f Hz", c.MinFreq, c.MaxFreq)
	}
	if c.SingleToneThreshold <= 0 || c.SingleToneThreshold > 1 {
		return fmt.Errorf("single-tone threshold must be in (0, 1]: %v", c.SingleToneThreshold)
	}
	return nil
}
