// Package main provides the CLI entry point for scenescan.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/scenescan/pkg/adapters/filesink"
	"github.com/user/scenescan/pkg/adapters/logger"
	"github.com/user/scenescan/pkg/adapters/nullsink"
	"github.com/user/scenescan/pkg/adapters/osfilesystem"
	"github.com/user/scenescan/pkg/adapters/scoreplot"
	"github.com/user/scenescan/pkg/config"
	"github.com/user/scenescan/pkg/cpu"
	"github.com/user/scenescan/pkg/detect"
	"github.com/user/scenescan/pkg/ports"
	"github.com/user/scenescan/pkg/scenechange"
	"github.com/user/scenescan/pkg/summarizer"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Detect  DetectCmd  `cmd:"" default:"withargs" help:"Detect scene changes in a Y4M stream."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// DetectCmd defines the detect subcommand.
type DetectCmd struct {
	// Input
	Input string `arg:"" optional:"" help:"Input Y4M file path (- or empty reads stdin)."`

	// Output
	Output string `short:"o" help:"Write pretty-printed results JSON to this file."`

	// Detection options
	NoFlashDetection bool `help:"Disable suppression of short scene flashes."`
	MinScenecut      *int `help:"Minimum distance between two scene cuts in frames."`
	MaxScenecut      *int `help:"Maximum distance between two scene cuts in frames."`
	Lookahead        *int `help:"Number of lookahead frames (default: 5)."`

	// CPU options
	CPU string `help:"CPU capability ceiling (scalar, sse2, ssse3, sse4.1, avx2, avx512, avx512icl)."`

	// Artifact options
	Plot     bool   `help:"Save a per-frame score plot to the debug directory."`
	Summary  string `short:"s" help:"Output run summary to file (.md for Markdown, plain text otherwise)."`
	DebugDir string `help:"Directory for plot and results output (default: ./debug)."`

	// Config file
	Config string `short:"c" type:"path" help:"Load settings from a YAML config file."`

	// Logging options
	LogLevel string `short:"l" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("scenescan"),
		kong.Description("Detect scene changes in video streams for encoder keyframe placement."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the detect command.
func (cmd *DetectCmd) Run() error {
	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if cfg.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	// Open input
	var in io.Reader
	if cfg.Input == "" || cfg.Input == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	// Build detection options
	opts := cfg.ToDetectionOptions()
	if cfg.CPU != "" {
		level, err := cpu.ParseLevel(cfg.CPU)
		if err != nil {
			return err
		}
		opts.CPULevel = &level
	}

	progress := func(framesAnalyzed, keyframes int) {
		if framesAnalyzed%500 == 0 {
			log.Debug(l10n.F("Analyzed %d frames so far (%d scene changes)", framesAnalyzed, keyframes))
		}
	}

	// Run detection
	results, info, err := detect.Detect(ctx, in, opts, log, progress)
	if err != nil {
		return err
	}

	// Print compact JSON to stdout
	compact, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	fmt.Println(string(compact))

	fs := osfilesystem.New()

	// Write pretty JSON file
	if cfg.Output != "" {
		pretty, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		if err := fs.WriteFile(cfg.Output, append(pretty, '\n')); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		log.Info(l10n.F("Results written to %s", cfg.Output))
	}

	// Create artifact sink
	var sink ports.ResultSink
	if cfg.Plot {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs)
	} else {
		sink = nullsink.New()
	}

	if cfg.Summary != "" {
		resolvedCPU := cpu.Detect()
		if opts.CPULevel != nil {
			resolvedCPU = *opts.CPULevel
		}
		summary := summarizer.NewBuilder().
			WithStream(summarizer.StreamInfo{
				Width:             info.Width,
				Height:            info.Height,
				BitDepth:          info.BitDepth,
				FrameRateNum:      info.FrameRateNum,
				FrameRateDen:      info.FrameRateDen,
				ChromaSubsampling: info.ChromaSubsampling,
			}).
			WithDetection(results.FrameCount, results.SceneChanges, results.SpeedFPS).
			WithScores(results.Scores).
			WithSettings(summarizer.Settings{
				MinScenecut:    formatInterval(opts.MinScenecutDistance),
				MaxScenecut:    formatInterval(opts.MaxScenecutDistance),
				Lookahead:      opts.LookaheadDistance,
				FlashDetection: opts.AnalyzeFlashes,
				CPULevel:       resolvedCPU.String(),
			}).
			Build()

		writer := summarizer.NewWriter(summaryFormatter(cfg.Summary))
		if err := writer.Write(cfg.Summary, summary); err != nil {
			log.Warn(l10n.F("Failed to write summary: %s", err))
		} else {
			log.Info(l10n.F("Summary saved to %s", cfg.Summary))
		}
	}

	saveArtifacts(sink, results, info.BitDepth, compact, log)

	return nil
}

// saveArtifacts writes the score plot and a copy of the results JSON
// through the sink. Failures are reported but never abort the run; the
// primary output already went to stdout.
func saveArtifacts(sink ports.ResultSink, results *detect.DetectionResults, bitDepth int, resultsJSON []byte, log ports.Logger) {
	if !sink.Enabled() {
		return
	}

	renderer := scoreplot.New()
	img := renderer.Render(results.Scores, scenechange.DefaultThreshold(bitDepth), results.SceneChanges)
	if err := sink.SaveScorePlot(img); err != nil {
		log.Warn(l10n.F("Failed to write score plot: %s", err))
	}
	if err := sink.SaveResultsJSON(resultsJSON); err != nil {
		log.Warn(l10n.F("Failed to write output: %s", err))
	}
}

// buildConfig merges the config file (if any) with CLI overrides.
// CLI flags take precedence over file values.
func (cmd *DetectCmd) buildConfig() (config.Config, error) {
	cfg := config.Defaults()
	if cmd.Config != "" {
		var err error
		cfg, err = config.LoadFromFile(cmd.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
	}

	if cmd.Input != "" {
		cfg.Input = cmd.Input
	}
	if cmd.Output != "" {
		cfg.Output = cmd.Output
	}
	if cmd.NoFlashDetection {
		cfg.NoFlashDetection = true
	}
	if cmd.MinScenecut != nil {
		cfg.MinScenecut = cmd.MinScenecut
	}
	if cmd.MaxScenecut != nil {
		cfg.MaxScenecut = cmd.MaxScenecut
	}
	if cmd.Lookahead != nil {
		cfg.Lookahead = *cmd.Lookahead
	}
	if cmd.CPU != "" {
		cfg.CPU = cmd.CPU
	}
	if cmd.Plot {
		cfg.Plot = true
	}
	if cmd.Summary != "" {
		cfg.Summary = cmd.Summary
	}
	if cmd.DebugDir != "" {
		cfg.DebugDir = cmd.DebugDir
	}
	if cmd.LogLevel != "" {
		cfg.LogLevel = cmd.LogLevel
	}
	if cmd.Quiet {
		cfg.Quiet = true
	}
	return cfg, nil
}

// formatInterval renders an optional frame interval for the summary.
func formatInterval(v *int) string {
	if v == nil {
		return "none"
	}
	return strconv.Itoa(*v)
}

// summaryFormatter picks the summary format from the output file
// extension. ".md" produces markdown, anything else plain text.
func summaryFormatter(path string) summarizer.Formatter {
	if filepath.Ext(path) == ".md" {
		return summarizer.NewMarkdownFormatter(summarizer.WithVersion(version))
	}
	return summarizer.NewTextFormatter()
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("scenescan version %s", version))
	return nil
}
