package detect

import (
	"context"
	"io"

	"github.com/ideamans/go-l10n"

	"github.com/user/scenescan/pkg/adapters/y4m"
	"github.com/user/scenescan/pkg/ports"
)

// Detect analyzes a YUV4MPEG2 stream end to end and returns the
// detected scene changes.
//
// The stream's bit depth decides whether the 8-bit or 16-bit pipeline
// runs; both share the same detector semantics.
func Detect(ctx context.Context, r io.Reader, opts DetectionOptions, logger ports.Logger, progress ports.ProgressReporter) (*DetectionResults, ports.StreamInfo, error) {
	dec, err := y4m.NewDecoder(r)
	if err != nil {
		return nil, ports.StreamInfo{}, err
	}
	info := dec.Info()
	logger.Info(l10n.F("Analyzing %dx%d %d-bit stream (%s chroma)",
		info.Width, info.Height, info.BitDepth, info.ChromaSubsampling))

	var results *DetectionResults
	if info.BitDepth == 8 {
		runner := NewRunner(dec.Source8(), info, opts, logger, progress)
		results, err = runner.Run(ctx)
	} else {
		runner := NewRunner(dec.Source16(), info, opts, logger, progress)
		results, err = runner.Run(ctx)
	}
	if err != nil {
		return nil, info, err
	}

	logger.Info(l10n.F("Analyzed %d frames, found %d scene changes (%.1f fps)",
		results.FrameCount, len(results.SceneChanges), results.SpeedFPS))
	return results, info, nil
}
