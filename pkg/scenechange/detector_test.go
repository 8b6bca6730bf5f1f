package scenechange

import (
	"math"
	"testing"

	"github.com/user/scenescan/pkg/mocks"
	"github.com/user/scenescan/pkg/vframe"
)

func flatFrame(width, height int, value uint8) *vframe.Frame[uint8] {
	luma := vframe.NewPlane[uint8](width, height)
	for i := range luma.Data {
		luma.Data[i] = value
	}
	return &vframe.Frame[uint8]{Planes: []*vframe.Plane[uint8]{luma}}
}

func testConfig(width, height int) Config {
	return Config{
		BitDepth:            8,
		LookaheadDistance:   5,
		Width:               width,
		Height:              height,
		MaxKeyframeInterval: math.MaxUint64,
		AnalyzeFlashes:      true,
	}
}

// analyzeStream drives the detector the way the lookahead queue does:
// a sliding window of up to lookahead+2 frames, the decided frame
// popped after each call.
func analyzeStream(d *Detector[uint8], frames []*vframe.Frame[uint8], lookahead int) []int {
	var cuts []int
	queue := make([]*vframe.Frame[uint8], 0, lookahead+2)
	next := 0
	fill := func() {
		for next < len(frames) && len(queue) < lookahead+2 {
			queue = append(queue, frames[next])
			next++
		}
	}

	fill()
	lastKeyframe := uint64(0)
	for frameNo := uint64(1); ; frameNo++ {
		fill()
		if len(queue) < 2 {
			break
		}
		if d.AnalyzeNextFrame(queue, frameNo, lastKeyframe) {
			lastKeyframe = frameNo
			cuts = append(cuts, int(frameNo))
		}
		queue = queue[1:]
	}
	return cuts
}

func TestDetector_IdenticalFramesNoCut(t *testing.T) {
	d := New[uint8](testConfig(32, 32), mocks.NewLogger())

	frames := make([]*vframe.Frame[uint8], 20)
	for i := range frames {
		frames[i] = flatFrame(32, 32, 128)
	}

	cuts := analyzeStream(d, frames, 5)
	if len(cuts) != 0 {
		t.Errorf("expected no cuts for a static stream, got %v", cuts)
	}
	if got := d.LastScore().ForwardAdjustedCost; got != 0 {
		t.Errorf("expected zero cost for identical frames, got %f", got)
	}
}

func TestDetector_CutAtSceneChange(t *testing.T) {
	d := New[uint8](testConfig(32, 32), mocks.NewLogger())

	// Five gray frames followed by five inverted ones.
	frames := make([]*vframe.Frame[uint8], 10)
	for i := range frames {
		value := uint8(40)
		if i >= 5 {
			value = 215
		}
		frames[i] = flatFrame(32, 32, value)
	}

	cuts := analyzeStream(d, frames, 5)
	if len(cuts) != 1 || cuts[0] != 5 {
		t.Errorf("expected a single cut at frame 5, got %v", cuts)
	}
}

func TestDetector_CutAtSceneChangeDownscaled(t *testing.T) {
	// 256x256 frames go through the factor-2 downscale path; the
	// decision must not change.
	d := New[uint8](testConfig(256, 256), mocks.NewLogger())

	frames := make([]*vframe.Frame[uint8], 10)
	for i := range frames {
		value := uint8(40)
		if i >= 5 {
			value = 215
		}
		frames[i] = flatFrame(256, 256, value)
	}

	cuts := analyzeStream(d, frames, 5)
	if len(cuts) != 1 || cuts[0] != 5 {
		t.Errorf("expected a single cut at frame 5, got %v", cuts)
	}
}

func TestDetector_ShortWindowNoCut(t *testing.T) {
	d := New[uint8](testConfig(32, 32), mocks.NewLogger())

	// A window no longer than the decision offset cannot be decided.
	frames := []*vframe.Frame[uint8]{
		flatFrame(32, 32, 40),
		flatFrame(32, 32, 215),
	}

	if d.AnalyzeNextFrame(frames, 1, 0) {
		t.Error("expected no cut for a window shorter than the decision offset")
	}
	if len(d.scoreDeque) != 0 {
		t.Errorf("expected the guard to leave the deque untouched, got %d entries", len(d.scoreDeque))
	}
}

func TestDetector_ShortStreamReanchorsOffset(t *testing.T) {
	// A stream of exactly lookahead+1 frames takes the fallback
	// initialization that anchors the decision offset to the last
	// decidable pair. The whole stream is decided in one call.
	d := New[uint8](testConfig(32, 32), mocks.NewLogger())

	frames := make([]*vframe.Frame[uint8], 6)
	for i := range frames {
		value := uint8(40)
		if i >= 2 {
			value = 215
		}
		frames[i] = flatFrame(32, 32, value)
	}

	cuts := analyzeStream(d, frames, 5)
	if len(cuts) != 1 {
		t.Fatalf("expected exactly one cut, got %v", cuts)
	}
	if d.dequeOffset != 4 {
		t.Errorf("expected the deque offset to re-anchor to 4, got %d", d.dequeOffset)
	}
}

func TestDetector_MinIntervalSuppressesCut(t *testing.T) {
	cfg := testConfig(32, 32)
	cfg.MinKeyframeInterval = 10
	d := New[uint8](cfg, mocks.NewLogger())

	frames := make([]*vframe.Frame[uint8], 10)
	for i := range frames {
		value := uint8(40)
		if i >= 5 {
			value = 215
		}
		frames[i] = flatFrame(32, 32, value)
	}

	cuts := analyzeStream(d, frames, 5)
	if len(cuts) != 0 {
		t.Errorf("expected the minimum interval to suppress all cuts, got %v", cuts)
	}
}

func TestDetector_MaxIntervalForcesCut(t *testing.T) {
	cfg := testConfig(32, 32)
	cfg.MaxKeyframeInterval = 3
	d := New[uint8](cfg, mocks.NewLogger())

	frames := make([]*vframe.Frame[uint8], 12)
	for i := range frames {
		frames[i] = flatFrame(32, 32, 128)
	}

	// Decisions stop once the window runs short, so only the forced
	// cuts at frames 3 and 6 are reachable.
	cuts := analyzeStream(d, frames, 5)
	want := []int{3, 6}
	if len(cuts) != len(want) || cuts[0] != want[0] || cuts[1] != want[1] {
		t.Errorf("expected forced cuts %v, got %v", want, cuts)
	}
}

func TestDetector_DequeCapacityBound(t *testing.T) {
	cfg := testConfig(32, 32)
	d := New[uint8](cfg, mocks.NewLogger())

	frames := make([]*vframe.Frame[uint8], 40)
	for i := range frames {
		frames[i] = flatFrame(32, 32, uint8(i*6))
	}

	queue := make([]*vframe.Frame[uint8], 0, 7)
	next := 0
	fill := func() {
		for next < len(frames) && len(queue) < 7 {
			queue = append(queue, frames[next])
			next++
		}
	}
	fill()
	lastKeyframe := uint64(0)
	for frameNo := uint64(1); ; frameNo++ {
		fill()
		if len(queue) < 2 {
			break
		}
		if d.AnalyzeNextFrame(queue, frameNo, lastKeyframe) {
			lastKeyframe = frameNo
		}
		if len(d.scoreDeque) > 5+cfg.LookaheadDistance {
			t.Fatalf("frame %d: deque grew to %d entries, cap is %d",
				frameNo, len(d.scoreDeque), 5+cfg.LookaheadDistance)
		}
		queue = queue[1:]
	}
}

func TestDetector_LastScoreTracksDecision(t *testing.T) {
	d := New[uint8](testConfig(32, 32), mocks.NewLogger())

	frames := make([]*vframe.Frame[uint8], 10)
	for i := range frames {
		value := uint8(40)
		if i >= 5 {
			value = 215
		}
		frames[i] = flatFrame(32, 32, value)
	}

	analyzeStream(d, frames, 5)

	// The last decided frame in this stream is the cut itself.
	score := d.LastScore()
	if score.ForwardAdjustedCost != 175 {
		t.Errorf("expected cost 175 for the inverted pair, got %f", score.ForwardAdjustedCost)
	}
	if score.Threshold != DefaultThreshold(8) {
		t.Errorf("expected threshold %f, got %f", DefaultThreshold(8), score.Threshold)
	}
}

func result(cost float64) ScenecutResult {
	return ScenecutResult{
		Threshold:            DefaultThreshold(8),
		ImpBlockCost:         cost,
		BackwardAdjustedCost: cost,
		ForwardAdjustedCost:  cost,
	}
}

func TestAdaptiveScenecut_ImpBlockGate(t *testing.T) {
	d := New[uint8](testConfig(32, 32), mocks.NewLogger())
	d.dequeOffset = 1

	// Cost over threshold but importance under its gate everywhere at
	// or behind the decision point.
	over := result(30)
	over.ImpBlockCost = 1
	d.scoreDeque = []ScenecutResult{result(0), over, result(0)}

	if d.adaptiveScenecut() {
		t.Error("expected the importance gate to reject the cut")
	}
}

func TestAdaptiveScenecut_FlashRules(t *testing.T) {
	tests := []struct {
		name    string
		forward []float64 // newest first, ahead of the decision point
		score   float64
		back    []float64 // behind the decision point
		want    bool
	}{
		{
			name:    "plain cut with quiet surroundings",
			forward: []float64{0, 0},
			score:   30,
			back:    []float64{0, 0, 0},
			want:    true,
		},
		{
			name:    "cut after flash needs two backward frames over",
			forward: []float64{0, 0},
			score:   30,
			back:    []float64{25, 25, 0},
			want:    true,
		},
		{
			name:    "single backward frame over is ambiguous",
			forward: []float64{0, 0},
			score:   30,
			back:    []float64{25, 0, 0},
			want:    false,
		},
		{
			name:    "cut before flash, newest forward frame over",
			forward: []float64{25, 0},
			score:   30,
			back:    []float64{0, 0, 0},
			want:    true,
		},
		{
			name:    "forward activity deeper in the window is ambiguous",
			forward: []float64{0, 25},
			score:   30,
			back:    []float64{0, 0, 0},
			want:    false,
		},
		{
			name:    "activity on both sides is ambiguous",
			forward: []float64{25, 0},
			score:   30,
			back:    []float64{25, 25, 0},
			want:    false,
		},
		{
			name:    "under threshold never cuts",
			forward: []float64{0, 0},
			score:   10,
			back:    []float64{0, 0, 0},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New[uint8](testConfig(32, 32), mocks.NewLogger())
			d.dequeOffset = len(tt.forward)

			deque := make([]ScenecutResult, 0, len(tt.forward)+1+len(tt.back))
			for _, c := range tt.forward {
				deque = append(deque, result(c))
			}
			deque = append(deque, result(tt.score))
			for _, c := range tt.back {
				deque = append(deque, result(c))
			}
			d.scoreDeque = deque

			if got := d.adaptiveScenecut(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAdaptiveScenecut_FlashesDisabled(t *testing.T) {
	cfg := testConfig(32, 32)
	cfg.AnalyzeFlashes = false
	d := New[uint8](cfg, mocks.NewLogger())
	d.dequeOffset = 1

	// An ambiguous flash pattern that the rules would suppress.
	d.scoreDeque = []ScenecutResult{result(25), result(30), result(25)}

	if !d.adaptiveScenecut() {
		t.Error("expected a plain threshold cut with flash analysis disabled")
	}
}

func TestHandleMinMaxIntervals(t *testing.T) {
	cfg := testConfig(32, 32)
	cfg.MinKeyframeInterval = 12
	cfg.MaxKeyframeInterval = 250
	d := New[uint8](cfg, mocks.NewLogger())

	tests := []struct {
		distance uint64
		forced   bool
		hit      bool
	}{
		{1, false, true},
		{11, false, true},
		{12, false, false},
		{249, false, false},
		{250, true, true},
		{1000, true, true},
	}

	for _, tt := range tests {
		forced, hit := d.handleMinMaxIntervals(tt.distance)
		if forced != tt.forced || hit != tt.hit {
			t.Errorf("distance %d: expected (%v, %v), got (%v, %v)",
				tt.distance, tt.forced, tt.hit, forced, hit)
		}
	}
}
