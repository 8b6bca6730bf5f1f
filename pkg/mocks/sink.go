package mocks

import (
	"image"
	"sync"

	"github.com/user/scenescan/pkg/ports"
)

// ResultSink is a mock implementation of ports.ResultSink.
type ResultSink struct {
	mu sync.RWMutex

	enabled bool

	ResultsJSON []byte
	Summary     string
	ScorePlot   image.Image
}

// NewResultSink creates a new mock ResultSink.
func NewResultSink(enabled bool) *ResultSink {
	return &ResultSink{enabled: enabled}
}

func (m *ResultSink) Enabled() bool {
	return m.enabled
}

func (m *ResultSink) SaveResultsJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResultsJSON = data
	return nil
}

func (m *ResultSink) SaveSummary(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Summary = text
	return nil
}

func (m *ResultSink) SaveScorePlot(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScorePlot = img
	return nil
}

var _ ports.ResultSink = (*ResultSink)(nil)
