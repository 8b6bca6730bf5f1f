// Package filesink provides a file-based result sink implementation.
package filesink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/user/scenescan/pkg/ports"
)

// Sink saves detection artifacts to files under a base directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new Sink.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveResultsJSON saves the detection results as JSON.
func (s *Sink) SaveResultsJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "results.json")
	return s.fs.WriteFile(path, data)
}

// SaveSummary saves the human-readable run summary.
func (s *Sink) SaveSummary(text string) error {
	path := filepath.Join(s.baseDir, "summary.md")
	return s.fs.WriteFile(path, []byte(text))
}

// SaveScorePlot saves the rendered score plot as PNG.
func (s *Sink) SaveScorePlot(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode score plot: %w", err)
	}
	path := filepath.Join(s.baseDir, "scoreplot.png")
	return s.fs.WriteFile(path, buf.Bytes())
}

// Ensure Sink implements ports.ResultSink
var _ ports.ResultSink = (*Sink)(nil)
