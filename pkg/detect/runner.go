package detect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/user/scenescan/pkg/cpu"
	"github.com/user/scenescan/pkg/ports"
	"github.com/user/scenescan/pkg/scenechange"
	"github.com/user/scenescan/pkg/vframe"
)

// Runner owns the lookahead queue and the detector for one stream.
type Runner[T vframe.Pixel] struct {
	source    ports.FrameSource[T]
	detector  *scenechange.Detector[T]
	lookahead int
	logger    ports.Logger
	progress  ports.ProgressReporter
}

// NewRunner builds a runner and its detector from the stream
// parameters and the run options.
func NewRunner[T vframe.Pixel](source ports.FrameSource[T], info ports.StreamInfo, opts DetectionOptions, logger ports.Logger, progress ports.ProgressReporter) *Runner[T] {
	minKF := uint64(0)
	if opts.MinScenecutDistance != nil {
		minKF = uint64(*opts.MinScenecutDistance)
	}
	maxKF := uint64(math.MaxUint64)
	if opts.MaxScenecutDistance != nil {
		maxKF = uint64(*opts.MaxScenecutDistance)
	}
	level := cpu.Detect()
	if opts.CPULevel != nil {
		level = *opts.CPULevel
	}

	detector := scenechange.New[T](scenechange.Config{
		BitDepth:            info.BitDepth,
		CPULevel:            level,
		LookaheadDistance:   opts.LookaheadDistance,
		Width:               info.Width,
		Height:              info.Height,
		MinKeyframeInterval: minKF,
		MaxKeyframeInterval: maxKF,
		AnalyzeFlashes:      opts.AnalyzeFlashes,
	}, logger)

	return &Runner[T]{
		source:    source,
		detector:  detector,
		lookahead: opts.LookaheadDistance,
		logger:    logger,
		progress:  progress,
	}
}

// Run analyzes the stream until the source is exhausted. Memory is
// bounded by the queue capacity: frames are released as soon as their
// decision is made.
func (r *Runner[T]) Run(ctx context.Context) (*DetectionResults, error) {
	start := time.Now()
	results := &DetectionResults{SceneChanges: []int{}}

	// The queue holds the previous frame plus the current one plus the
	// forward look-ahead.
	queue := make([]*vframe.Frame[T], 0, r.lookahead+2)
	eof := false

	fill := func() error {
		for !eof && len(queue) < r.lookahead+2 {
			frame, err := r.source.ReadFrame()
			if errors.Is(err, io.EOF) {
				eof = true
				return nil
			}
			if err != nil {
				return fmt.Errorf("read frame %d: %w", results.FrameCount, err)
			}
			queue = append(queue, frame)
			results.FrameCount++
		}
		return nil
	}

	if err := fill(); err != nil {
		return nil, err
	}
	if results.FrameCount == 0 {
		r.logger.Warn(l10n.T("Stream contains no frames"))
		return results, nil
	}

	// The first frame of a stream always starts a scene.
	results.SceneChanges = append(results.SceneChanges, 0)
	lastKeyframe := uint64(0)

	for frameNo := uint64(1); ; frameNo++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := fill(); err != nil {
			return nil, err
		}
		if len(queue) < 2 {
			break
		}

		if r.detector.AnalyzeNextFrame(queue, frameNo, lastKeyframe) {
			lastKeyframe = frameNo
			results.SceneChanges = append(results.SceneChanges, int(frameNo))
			r.logger.Debug("Scene cut at frame %d", frameNo)
		}
		results.Scores = append(results.Scores, r.detector.LastScore().ForwardAdjustedCost)

		// Pop the decided frame and drop its reference so the backing
		// buffers can be reclaimed.
		copy(queue, queue[1:])
		queue[len(queue)-1] = nil
		queue = queue[:len(queue)-1]

		if r.progress != nil {
			r.progress(int(frameNo), len(results.SceneChanges))
		}
	}

	if elapsed := time.Since(start).Seconds(); elapsed > 0 {
		results.SpeedFPS = float64(results.FrameCount) / elapsed
	}
	return results, nil
}
