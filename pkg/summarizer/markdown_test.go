package summarizer

import (
	"strings"
	"testing"
	"time"
)

func sampleSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Stream: StreamInfo{
			Width: 1280, Height: 720, BitDepth: 8,
			FrameRateNum: 30, FrameRateDen: 1, ChromaSubsampling: "420",
		},
		Detection: DetectionInfo{
			FrameCount:   300,
			SceneChanges: []int{0, 75, 210},
			SpeedFPS:     640.2,
		},
		Scores: ScoreStats{Mean: 3.2, StdDev: 5.1, Median: 1.0, P95: 14.8, Max: 92.4},
		Settings: Settings{
			MinScenecut: "none", MaxScenecut: "250",
			Lookahead: 5, FlashDetection: true, CPULevel: "avx2",
		},
	}
}

// identity keeps the output deterministic regardless of locale.
func identity(s string) string { return s }

func TestMarkdownFormatter_Sections(t *testing.T) {
	f := NewMarkdownFormatter(WithTranslator(identity))
	doc := f.Format(sampleSummary())

	for _, want := range []string{
		"# Scene Change Summary",
		"## Stream",
		"## Detection",
		"## Scores",
		"## Settings",
		"Resolution: 1280x720",
		"Frames analyzed: 300",
		"Cut frames: 0, 75, 210",
		"Analysis speed: 640.2 fps",
		"95th percentile: 14.80",
		"Max scenecut interval: 250",
		"CPU level: avx2",
		"2026-03-14 09:30:00",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("expected document to contain %q\n%s", want, doc)
		}
	}
}

func TestMarkdownFormatter_Version(t *testing.T) {
	f := NewMarkdownFormatter(WithTranslator(identity), WithVersion("1.2.3"))
	doc := f.Format(sampleSummary())

	if !strings.Contains(doc, "Generated by scenescan 1.2.3") {
		t.Errorf("expected version footer, got:\n%s", doc)
	}

	noVersion := NewMarkdownFormatter(WithTranslator(identity)).Format(sampleSummary())
	if strings.Contains(noVersion, "---") {
		t.Error("expected no footer without a version")
	}
}

func TestFormatCutList(t *testing.T) {
	if got := formatCutList(nil); got != "-" {
		t.Errorf("expected \"-\" for no cuts, got %q", got)
	}
	if got := formatCutList([]int{0, 5}); got != "0, 5" {
		t.Errorf("expected \"0, 5\", got %q", got)
	}

	long := make([]int, 30)
	for i := range long {
		long[i] = i
	}
	got := formatCutList(long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected a truncated list to end with ..., got %q", got)
	}
	if strings.Contains(got, "25") {
		t.Errorf("expected entries past the limit to be dropped, got %q", got)
	}
}
