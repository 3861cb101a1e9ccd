package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/RyanBlaney/sonido-clave/algorithms/tonal"
	"github.com/RyanBlaney/sonido-clave/keydetect"
)

// formatResult renders the one-line detection verdict
func formatResult(result *keydetect.Result) string {
	if result.Kind == tonal.KindSingleTone {
		return fmt.Sprintf("Key: %s (Single Tone)", result.Root)
	}
	return fmt.Sprintf("%s: %s %s", result.Kind, result.Root, result.Scale)
}

// renderScoreTable renders the full candidate ranking, preserving the
// classifier's sort order.
func renderScoreTable(result *keydetect.Result) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Type", "Root", "Scale", "Score"})

	for _, cand := range result.Candidates {
		tw.AppendRow(table.Row{
			cand.Category.String(),
			cand.Root.String(),
			cand.Scale,
			fmt.Sprintf("%.4f", cand.Score),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
