// Package scenechange decides, frame by frame, whether an encoder
// should insert a keyframe. It runs a fast pixel-difference comparison
// over a sliding window of lookahead frames and applies an adaptive,
// flash-aware threshold to the resulting cost history.
package scenechange

import (
	"github.com/user/scenescan/pkg/cpu"
	"github.com/user/scenescan/pkg/ports"
	"github.com/user/scenescan/pkg/vframe"
)

// Experiments have determined this to be an optimal threshold.
const impBlockDiffThreshold = 7.0

// ScenecutResult is the cost record for one compared frame pair.
//
// The fast algorithm sets the three cost fields to the same delta; the
// field separation exists so a future importance-block cost algorithm
// can report diverging values without changing the record shape.
type ScenecutResult struct {
	Threshold            float64
	ImpBlockCost         float64
	BackwardAdjustedCost float64
	ForwardAdjustedCost  float64
}

// Config holds the construction-time detector parameters. All fields
// are fixed for the detector's lifetime.
type Config struct {
	// BitDepth of the video samples; thresholds scale with it.
	BitDepth int

	// CPULevel selects the difference-computation kernel.
	CPULevel cpu.Level

	// LookaheadDistance is the number of frames of forward look-ahead
	// the caller's queue provides.
	LookaheadDistance int

	// Native frame dimensions before any downscaling.
	Width  int
	Height int

	// MinKeyframeInterval forces "no cut" for frames closer than this
	// to the previous keyframe. MaxKeyframeInterval forces a cut at or
	// beyond that distance.
	MinKeyframeInterval uint64
	MaxKeyframeInterval uint64

	// AnalyzeFlashes enables the flash suppression rules. When false,
	// only the plain threshold crossing applies.
	AnalyzeFlashes bool
}

// Detector runs keyframe detection on frames from the lookahead queue.
type Detector[T vframe.Pixel] struct {
	// Minimum average per-pixel difference that triggers a scene change.
	threshold float64

	// Two-slot buffer holding the most recently compared frame pair,
	// downscaled or full-resolution depending on the scale policy.
	buf pairBuffer[T]

	// Configured decision offset into the window (fixed).
	lookaheadOffset int
	// Current deque offset; shrinks only near end of stream.
	dequeOffset int

	// Scenecut results for adaptive thresholding, newest first.
	scoreDeque []ScenecutResult

	// Number of pixels in a (possibly downscaled) comparison plane.
	pixels int

	bitDepth          int
	cpuLevel          cpu.Level
	lookaheadDistance int
	analyzeFlashes    bool

	minKFInterval uint64
	maxKFInterval uint64

	lastScore ScenecutResult

	logger ports.Logger
}

// New creates a detector for one encoding session.
func New[T vframe.Pixel](cfg Config, logger ports.Logger) *Detector[T] {
	scale := detectScaleFactor[T](cfg.Width, cfg.Height)

	// Keep the decision point 5 frames back when the lookahead allows it.
	lookaheadOffset := cfg.LookaheadDistance
	if lookaheadOffset > 5 {
		lookaheadOffset = 5
	}

	factor := 1
	var buf pairBuffer[T]
	if scale != nil {
		factor = scale.factor
		buf = &scratchBuffer[T]{scale: scale}
	} else {
		buf = &refBuffer[T]{}
	}

	return &Detector[T]{
		threshold:         DefaultThreshold(cfg.BitDepth),
		buf:               buf,
		lookaheadOffset:   lookaheadOffset,
		dequeOffset:       lookaheadOffset,
		scoreDeque:        make([]ScenecutResult, 0, 5+cfg.LookaheadDistance),
		pixels:            (cfg.Height / factor) * (cfg.Width / factor),
		bitDepth:          cfg.BitDepth,
		cpuLevel:          cfg.CPULevel,
		lookaheadDistance: cfg.LookaheadDistance,
		analyzeFlashes:    cfg.AnalyzeFlashes,
		minKFInterval:     cfg.MinKeyframeInterval,
		maxKFInterval:     cfg.MaxKeyframeInterval,
		logger:            logger.WithComponent("scenechange"),
	}
}

// AnalyzeNextFrame runs keyframe detection on the next frame in the
// lookahead queue and returns true if it starts a new scene.
//
// Frames must be presented in temporal order across successive calls,
// frameSet must contain at least two frames, and inputFrameNo must
// correspond to the second frame of frameSet. The detector is the only
// writer of its own state.
func (d *Detector[T]) AnalyzeNextFrame(frameSet []*vframe.Frame[T], inputFrameNo, previousKeyframe uint64) bool {
	distance := inputFrameNo - previousKeyframe

	if len(frameSet) <= d.lookaheadOffset {
		// Don't insert keyframes in the last few frames of the video.
		// That is basically a scene flash and a waste of bits.
		return false
	}

	// Prime the score deque on the first productive call. A window
	// shorter than usual (end of stream) re-anchors the deque offset to
	// the last decidable pair.
	if d.dequeOffset > 0 && len(frameSet) > d.dequeOffset+1 && len(d.scoreDeque) == 0 {
		d.initializeScoreDeque(frameSet, d.dequeOffset)
	} else if len(d.scoreDeque) == 0 {
		d.initializeScoreDeque(frameSet, len(frameSet)-1)
		d.dequeOffset = len(frameSet) - 2
	}

	// Compare the newly visible pair, or shrink the decision offset
	// when the window has run out of forward look-ahead.
	if len(frameSet) > d.dequeOffset+1 {
		d.runComparison(frameSet[d.dequeOffset], frameSet[d.dequeOffset+1])
	} else {
		d.dequeOffset--
	}

	scenecut := d.adaptiveScenecut()
	if forced, ok := d.handleMinMaxIntervals(distance); ok {
		scenecut = forced
	}

	score := d.scoreDeque[d.dequeOffset]
	d.lastScore = score
	d.logger.Debug("Frame %d: cost=%.1f imp=%.1f threshold=%.1f cut=%v",
		inputFrameNo, score.ForwardAdjustedCost, score.ImpBlockCost, score.Threshold, scenecut)

	// Keep 5 backward entries plus the lookahead's worth of forward
	// entries.
	if len(d.scoreDeque) > 5+d.lookaheadDistance {
		d.scoreDeque = d.scoreDeque[:len(d.scoreDeque)-1]
	}

	return scenecut
}

// LastScore returns the cost record the most recent AnalyzeNextFrame
// call based its decision on. Useful for reporting and plotting.
func (d *Detector[T]) LastScore() ScenecutResult {
	return d.lastScore
}

// handleMinMaxIntervals applies the hard keyframe interval bounds.
// The returned bool pair is (forced decision, bound hit).
func (d *Detector[T]) handleMinMaxIntervals(distance uint64) (bool, bool) {
	if distance < d.minKFInterval {
		return false, true
	}
	if distance >= d.maxKFInterval {
		return true, true
	}
	return false, false
}

// initializeScoreDeque fills the score deque with the first initLen
// consecutive pair comparisons.
func (d *Detector[T]) initializeScoreDeque(frameSet []*vframe.Frame[T], initLen int) {
	for x := 0; x < initLen; x++ {
		d.runComparison(frameSet[x], frameSet[x+1])
	}
}

// runComparison compares two frames and inserts the result at the
// front of the score deque, which orders entries newest first.
func (d *Detector[T]) runComparison(frame1, frame2 *vframe.Frame[T]) {
	result := d.fastScenecut(frame1, frame2)
	d.scoreDeque = append(d.scoreDeque, ScenecutResult{})
	copy(d.scoreDeque[1:], d.scoreDeque)
	d.scoreDeque[0] = result
}

// adaptiveScenecut compares the score at the decision offset to its
// threshold, using the surrounding deque entries to recognize and
// suppress short flashes.
func (d *Detector[T]) adaptiveScenecut() bool {
	score := d.scoreDeque[d.dequeOffset]

	// The importance block algorithm struggles in some scenarios, such
	// as finding the end of a pan, but it is very good at detecting
	// hard scenecuts and pans. Only consider a frame for a scenechange
	// if it is over the importance block threshold either on this frame
	// (hard scenecut) or within the past few frames (pan). This filters
	// out false positives from the cost-based algorithm.
	impBlockThreshold := impBlockDiffThreshold * float64(d.bitDepth) / 8.0
	anyOver := false
	for _, result := range d.scoreDeque[d.dequeOffset:] {
		if result.ImpBlockCost >= impBlockThreshold {
			anyOver = true
			break
		}
	}
	if !anyOver {
		return false
	}

	cost := score.ForwardAdjustedCost
	if d.analyzeFlashes && cost >= score.Threshold {
		backDeque := d.scoreDeque[d.dequeOffset+1:]
		forwardDeque := d.scoreDeque[:d.dequeOffset]

		backOverCount := 0
		for _, result := range backDeque {
			if result.BackwardAdjustedCost >= result.Threshold {
				backOverCount++
			}
		}
		forwardOverCount := 0
		for _, result := range forwardDeque {
			if result.ForwardAdjustedCost >= result.Threshold {
				forwardOverCount++
			}
		}

		// Scenecut just after a flash: no frames over threshold forward
		// and several backward. The fast algorithm is sensitive to
		// false flash detection, so it takes more evidence of a flash
		// before placing a keyframe here.
		const backCountReq = 2
		if forwardOverCount == 0 && backOverCount >= backCountReq {
			return true
		}

		// Scenecut just before a flash, if the distance is longer than
		// the maximum flash length.
		if backOverCount == 0 && forwardOverCount == 1 &&
			forwardDeque[0].ForwardAdjustedCost >= forwardDeque[0].Threshold {
			return true
		}

		// Ambiguous flash pattern, suppress.
		if backOverCount != 0 || forwardOverCount != 0 {
			return false
		}
	}

	return cost >= score.Threshold
}
