package ports

import (
	"image"
)

// ResultSink abstracts persistence of detection artifacts.
// It lets the detection pipeline save results and diagnostic output
// without binding to the filesystem.
type ResultSink interface {
	// Enabled returns true if the sink stores output.
	Enabled() bool

	// SaveResultsJSON saves the detection results as JSON.
	SaveResultsJSON(data []byte) error

	// SaveSummary saves the human-readable run summary.
	SaveSummary(text string) error

	// SaveScorePlot saves the rendered per-frame score plot.
	SaveScorePlot(img image.Image) error
}
