// Package detect drives scene-cut detection over a decoded frame
// stream. It owns the lookahead queue the detector core assumes,
// feeding it fixed-size windows as frames arrive.
package detect

import (
	"github.com/user/scenescan/pkg/cpu"
)

// DetectionOptions configures a detection run.
type DetectionOptions struct {
	// AnalyzeFlashes enables detection and suppression of short scene
	// flashes so they are not reported as cuts.
	AnalyzeFlashes bool

	// MinScenecutDistance suppresses cuts closer than this many frames
	// to the previous one. Nil means no minimum.
	MinScenecutDistance *int

	// MaxScenecutDistance forces a cut after this many frames without
	// one. Nil means no maximum.
	MaxScenecutDistance *int

	// LookaheadDistance is how many frames of forward look-ahead the
	// runner keeps queued for the detector.
	LookaheadDistance int

	// CPULevel overrides the detected CPU capability tier. Nil means
	// autodetect.
	CPULevel *cpu.Level
}

// DefaultOptions returns the options used when the caller does not
// specify any.
func DefaultOptions() DetectionOptions {
	return DetectionOptions{
		AnalyzeFlashes:    true,
		LookaheadDistance: 5,
	}
}

// DetectionResults is the outcome of a detection run. It is serialized
// to JSON by the CLI.
type DetectionResults struct {
	// SceneChanges lists the frame indices that start a new scene.
	// Frame 0 is always included when the stream is non-empty.
	SceneChanges []int `json:"scene_changes"`

	// FrameCount is the total number of frames analyzed.
	FrameCount int `json:"frame_count"`

	// SpeedFPS is the analysis throughput in frames per second.
	SpeedFPS float64 `json:"speed"`

	// Scores holds the per-frame decision cost, one entry per decided
	// frame starting at frame 1. Used for reporting and plotting.
	Scores []float64 `json:"scores,omitempty"`
}
