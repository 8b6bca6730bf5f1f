package summarizer

import (
	"fmt"
	"strings"

	"github.com/ideamans/go-l10n"
)

// MarkdownFormatter formats a Summary as a markdown document.
type MarkdownFormatter struct {
	translator func(string) string
	version    string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets a custom translation function for section
// headings and labels. The default uses go-l10n.
func WithTranslator(translator func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translator = translator
	}
}

// WithVersion adds the tool version to the document footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a markdown formatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translator: l10n.T,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format converts a Summary to a markdown document.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	t := f.translator
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Scene Change Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), summary.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "## %s\n\n", t("Stream"))
	fmt.Fprintf(&b, "- %s: %dx%d\n", t("Resolution"), summary.Stream.Width, summary.Stream.Height)
	fmt.Fprintf(&b, "- %s: %d bit\n", t("Bit depth"), summary.Stream.BitDepth)
	fmt.Fprintf(&b, "- %s: %d/%d\n", t("Frame rate"), summary.Stream.FrameRateNum, summary.Stream.FrameRateDen)
	fmt.Fprintf(&b, "- %s: %s\n\n", t("Chroma subsampling"), summary.Stream.ChromaSubsampling)

	fmt.Fprintf(&b, "## %s\n\n", t("Detection"))
	fmt.Fprintf(&b, "- %s: %d\n", t("Frames analyzed"), summary.Detection.FrameCount)
	fmt.Fprintf(&b, "- %s: %d\n", t("Scene changes"), len(summary.Detection.SceneChanges))
	fmt.Fprintf(&b, "- %s: %s\n", t("Cut frames"), formatCutList(summary.Detection.SceneChanges))
	fmt.Fprintf(&b, "- %s: %.1f fps\n\n", t("Analysis speed"), summary.Detection.SpeedFPS)

	fmt.Fprintf(&b, "## %s\n\n", t("Scores"))
	fmt.Fprintf(&b, "- %s: %.2f\n", t("Mean"), summary.Scores.Mean)
	fmt.Fprintf(&b, "- %s: %.2f\n", t("Std dev"), summary.Scores.StdDev)
	fmt.Fprintf(&b, "- %s: %.2f\n", t("Median"), summary.Scores.Median)
	fmt.Fprintf(&b, "- %s: %.2f\n", t("95th percentile"), summary.Scores.P95)
	fmt.Fprintf(&b, "- %s: %.2f\n\n", t("Max"), summary.Scores.Max)

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&b, "- %s: %s\n", t("Min scenecut interval"), summary.Settings.MinScenecut)
	fmt.Fprintf(&b, "- %s: %s\n", t("Max scenecut interval"), summary.Settings.MaxScenecut)
	fmt.Fprintf(&b, "- %s: %d\n", t("Lookahead"), summary.Settings.Lookahead)
	fmt.Fprintf(&b, "- %s: %v\n", t("Flash detection"), summary.Settings.FlashDetection)
	fmt.Fprintf(&b, "- %s: %s\n", t("CPU level"), summary.Settings.CPULevel)

	if f.version != "" {
		fmt.Fprintf(&b, "\n---\n%s\n", fmt.Sprintf(t("Generated by scenescan %s"), f.version))
	}

	return b.String()
}

// formatCutList renders the cut frame indices, truncating long lists.
func formatCutList(cuts []int) string {
	const maxListed = 20
	parts := make([]string, 0, min(len(cuts), maxListed))
	for i, c := range cuts {
		if i == maxListed {
			parts = append(parts, "...")
			break
		}
		parts = append(parts, fmt.Sprintf("%d", c))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
