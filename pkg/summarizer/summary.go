// Package summarizer provides summary generation for detection runs.
package summarizer

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Summary contains all data collected during a detection run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Input stream parameters
	Stream StreamInfo

	// Detection results
	Detection DetectionInfo

	// Statistics over the per-frame decision costs
	Scores ScoreStats

	// Run settings
	Settings Settings
}

// StreamInfo describes the analyzed stream.
type StreamInfo struct {
	Width             int
	Height            int
	BitDepth          int
	FrameRateNum      int
	FrameRateDen      int
	ChromaSubsampling string
}

// DetectionInfo contains the detection outcome.
type DetectionInfo struct {
	FrameCount   int
	SceneChanges []int
	SpeedFPS     float64
}

// ScoreStats contains statistics over the per-frame decision costs.
type ScoreStats struct {
	Mean   float64
	StdDev float64
	Median float64
	P95    float64
	Max    float64
}

// Settings contains the detection configuration.
type Settings struct {
	MinScenecut    string // frame count or "none"
	MaxScenecut    string // frame count or "none"
	Lookahead      int
	FlashDetection bool
	CPULevel       string
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// ComputeScoreStats derives score statistics from the per-frame costs.
// Returns zeroes for an empty slice.
func ComputeScoreStats(scores []float64) ScoreStats {
	if len(scores) == 0 {
		return ScoreStats{}
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	return ScoreStats{
		Mean:   stat.Mean(sorted, nil),
		StdDev: stat.StdDev(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithStream sets the stream parameters.
func (b *Builder) WithStream(stream StreamInfo) *Builder {
	b.summary.Stream = stream
	return b
}

// WithDetection sets the detection outcome.
func (b *Builder) WithDetection(frameCount int, sceneChanges []int, speedFPS float64) *Builder {
	b.summary.Detection = DetectionInfo{
		FrameCount:   frameCount,
		SceneChanges: sceneChanges,
		SpeedFPS:     speedFPS,
	}
	return b
}

// WithScores computes and sets score statistics from the per-frame
// costs.
func (b *Builder) WithScores(scores []float64) *Builder {
	b.summary.Scores = ComputeScoreStats(scores)
	return b
}

// WithSettings sets the run settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
