package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter formats a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate labels.
func WithTranslator(t func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion adds the generator version to the footer.
func WithVersion(v string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = v
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Render Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), s.GeneratedAt.Format(time.RFC3339))

	// Results
	totals := s.Totals()
	fmt.Fprintf(&b, "## %s\n\n", t("Results"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&b, "| %s | %d |\n", t("Messages"), len(s.Messages))
	fmt.Fprintf(&b, "| %s | %d |\n", t("Imagized"), totals[OutcomeImage])
	fmt.Fprintf(&b, "| %s | %d |\n", t("Sent as text"), totals[OutcomeText])
	fmt.Fprintf(&b, "| %s | %d |\n\n", t("Render failures"), totals[OutcomeFallback])

	// Settings
	st := s.Settings
	config := st.ConfigPath
	if config == "" {
		config = t("Defaults")
	}
	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Configuration"), config)
	fmt.Fprintf(&b, "| %s | %d |\n", t("Max Line Count"), st.MaxLineCount)
	fmt.Fprintf(&b, "| %s | %d |\n", t("Max Length"), st.MaxLength)
	fmt.Fprintf(&b, "| %s | %s |\n", t("Font"), st.Font)
	fmt.Fprintf(&b, "| %s | %s |\n", t("Background"), st.Background)
	fmt.Fprintf(&b, "| %s | %s |\n\n", t("Foreground"), st.Foreground)

	// Messages
	if len(s.Messages) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Messages"))
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n|---|---|---|---|---|---|\n",
			t("Message"), t("Result"), t("Lines"), t("Length"), t("Image Size"), t("File Size"))
		for _, m := range s.Messages {
			size, bytes := "-", "-"
			if m.Outcome == OutcomeImage {
				size = fmt.Sprintf("%dx%d", m.Width, m.Height)
				bytes = formatBytes(m.ImageSize)
			}
			fmt.Fprintf(&b, "| %s | %s | %d | %d | %s | %s |\n",
				m.ID, t(outcomeLabel(m.Outcome)), m.Lines, m.Length, size, bytes)
		}
		b.WriteString("\n")
	}

	footer := t("Generated by") + " imagify"
	if f.version != "" {
		footer += " " + f.version
	}
	fmt.Fprintf(&b, "---\n\n%s\n", footer)

	return b.String()
}

func outcomeLabel(o Outcome) string {
	switch o {
	case OutcomeImage:
		return "Image"
	case OutcomeText:
		return "Text"
	case OutcomeFallback:
		return "Failed, sent as text"
	}
	return string(o)
}

// formatBytes formats a byte count using binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit && exp < 2; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}
