package summarizer

import (
	"fmt"
	"strings"

	"github.com/ideamans/go-l10n"
)

// TextFormatter formats a Summary as plain text.
type TextFormatter struct {
	translator func(string) string
}

// NewTextFormatter creates a plain text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		translator: l10n.T,
	}
}

// Format converts a Summary to plain text.
func (f *TextFormatter) Format(summary *Summary) string {
	t := f.translator
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", t("Scene Change Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), summary.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "%s: %dx%d, %d bit, %d/%d fps, %s\n",
		t("Stream"),
		summary.Stream.Width, summary.Stream.Height,
		summary.Stream.BitDepth,
		summary.Stream.FrameRateNum, summary.Stream.FrameRateDen,
		summary.Stream.ChromaSubsampling)
	fmt.Fprintf(&b, "%s: %d\n", t("Frames analyzed"), summary.Detection.FrameCount)
	fmt.Fprintf(&b, "%s: %d (%s)\n", t("Scene changes"),
		len(summary.Detection.SceneChanges),
		formatCutList(summary.Detection.SceneChanges))
	fmt.Fprintf(&b, "%s: %.1f fps\n\n", t("Analysis speed"), summary.Detection.SpeedFPS)

	fmt.Fprintf(&b, "%s: %s %.2f / %s %.2f / %s %.2f / %s %.2f / %s %.2f\n",
		t("Scores"),
		t("Mean"), summary.Scores.Mean,
		t("Std dev"), summary.Scores.StdDev,
		t("Median"), summary.Scores.Median,
		t("95th percentile"), summary.Scores.P95,
		t("Max"), summary.Scores.Max)
	fmt.Fprintf(&b, "%s: %s=%s %s=%s %s=%d %s=%v %s=%s\n",
		t("Settings"),
		t("Min scenecut interval"), summary.Settings.MinScenecut,
		t("Max scenecut interval"), summary.Settings.MaxScenecut,
		t("Lookahead"), summary.Settings.Lookahead,
		t("Flash detection"), summary.Settings.FlashDetection,
		t("CPU level"), summary.Settings.CPULevel)

	return b.String()
}
