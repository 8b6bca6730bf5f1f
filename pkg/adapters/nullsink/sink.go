// Package nullsink provides a no-op result sink implementation.
package nullsink

import (
	"image"

	"github.com/user/scenescan/pkg/ports"
)

// Sink is a no-op implementation of ports.ResultSink.
// It discards all output.
type Sink struct{}

// New creates a new Sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveResultsJSON does nothing.
func (s *Sink) SaveResultsJSON(data []byte) error {
	return nil
}

// SaveSummary does nothing.
func (s *Sink) SaveSummary(text string) error {
	return nil
}

// SaveScorePlot does nothing.
func (s *Sink) SaveScorePlot(img image.Image) error {
	return nil
}

// Ensure Sink implements ports.ResultSink
var _ ports.ResultSink = (*Sink)(nil)
