package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/user/scenescan/pkg/detect"
	"github.com/user/scenescan/pkg/mocks"
	"github.com/user/scenescan/pkg/summarizer"
)

func TestSaveArtifacts(t *testing.T) {
	sink := mocks.NewResultSink(true)
	results := &detect.DetectionResults{
		SceneChanges: []int{0, 48},
		FrameCount:   120,
		Scores:       []float64{1, 2, 40, 2, 1},
	}
	resultsJSON := []byte(`{"scene_changes":[0,48]}`)

	saveArtifacts(sink, results, 8, resultsJSON, mocks.NewLogger())

	if sink.ScorePlot == nil {
		t.Error("expected a rendered score plot")
	}
	if string(sink.ResultsJSON) != string(resultsJSON) {
		t.Errorf("expected results JSON to pass through, got %q", sink.ResultsJSON)
	}
}

func TestSaveArtifacts_DisabledSink(t *testing.T) {
	sink := mocks.NewResultSink(false)

	saveArtifacts(sink, &detect.DetectionResults{}, 8, nil, mocks.NewLogger())

	if sink.ScorePlot != nil || sink.ResultsJSON != nil {
		t.Error("expected a disabled sink to receive nothing")
	}
}

func TestDetectCmd_BuildConfigCLIOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	content := "lookahead: 10\nlog_level: warn\ncpu: sse2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	lookahead := 3
	cmd := &DetectCmd{
		Input:     "clip.y4m",
		Config:    path,
		Lookahead: &lookahead,
		Quiet:     true,
	}

	cfg, err := cmd.buildConfig()
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}

	if cfg.Lookahead != 3 {
		t.Errorf("expected the CLI lookahead to win, got %d", cfg.Lookahead)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected the file log level to hold, got %s", cfg.LogLevel)
	}
	if cfg.CPU != "sse2" {
		t.Errorf("expected the file CPU level to hold, got %s", cfg.CPU)
	}
	if cfg.Input != "clip.y4m" || !cfg.Quiet {
		t.Errorf("unexpected merged config: %+v", cfg)
	}
}

func TestDetectCmd_BuildConfigDefaults(t *testing.T) {
	cmd := &DetectCmd{}

	cfg, err := cmd.buildConfig()
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}
	if cfg.Lookahead != 5 || cfg.LogLevel != "info" || cfg.DebugDir != "./debug" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestFormatInterval(t *testing.T) {
	if got := formatInterval(nil); got != "none" {
		t.Errorf("expected \"none\", got %q", got)
	}
	v := 250
	if got := formatInterval(&v); got != "250" {
		t.Errorf("expected \"250\", got %q", got)
	}
}

func TestSummaryFormatter(t *testing.T) {
	if _, ok := summaryFormatter("report.md").(*summarizer.MarkdownFormatter); !ok {
		t.Error("expected a markdown formatter for .md files")
	}
	if _, ok := summaryFormatter("report.txt").(*summarizer.TextFormatter); !ok {
		t.Error("expected a text formatter for other files")
	}
}
