package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-clave/keydetect"
	"github.com/RyanBlaney/sonido-clave/logging"
	"github.com/RyanBlaney/sonido-clave/transcode"
	"github.com/RyanBlaney/sonido-clave/viz"
)

func newRootCommand() *cobra.Command {
	var plotFlag string
	var showScoresFlag bool
	var verboseFlag bool

	rootCmd := &cobra.Command{
		Use:           "clave <audio-file>",
		Short:         "Detect the musical key or mode of an audio file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verboseFlag {
				logging.SetLevel(logging.DebugLevel)
			}
			return runDetect(cmd, args[0], plotFlag, showScoresFlag)
		},
	}

	rootCmd.Flags().StringVar(&plotFlag, "plot", "", "Path to save the FFT spectrum plot image")
	rootCmd.Flags().BoolVar(&showScoresFlag, "show-scores", false, "Print all key and mode scores sorted by score")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	return rootCmd
}

func runDetect(cmd *cobra.Command, audioFile, plotName string, showScores bool) error {
	if _, err := os.Stat(audioFile); err != nil {
		return fmt.Errorf("'%s' not found", audioFile)
	}

	audio, err := transcode.NewDecoder(nil).DecodeFile(audioFile)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", audioFile, err)
	}

	result := keydetect.NewDetector().DetectAudio(audio)

	if plotName != "" {
		if err := viz.SaveSpectrumPlot(result.Spectrum, plotName); err != nil {
			return err
		}
		cmd.Printf("Plot saved as %s\n", plotName)
	}

	if showScores && len(result.Candidates) > 0 {
		cmd.Println("\nScores for all keys and modes:")
		cmd.Println(renderScoreTable(result))
	}

	cmd.Printf("\nDetected %s\n", formatResult(result))
	return nil
}
