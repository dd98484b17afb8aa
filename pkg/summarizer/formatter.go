package summarizer

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Formatter turns a Summary into file content.
type Formatter interface {
	Format(summary *Summary) string
}

// FormatFunc adapts a function to Formatter.
type FormatFunc func(summary *Summary) string

// Format implements Formatter.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// YAMLFormatter writes the summary as a YAML document for other tools.
type YAMLFormatter struct{}

// Format implements Formatter.
func (YAMLFormatter) Format(s *Summary) string {
	doc := struct {
		Summary `yaml:",inline"`
		Totals  map[Outcome]int `yaml:"totals"`
	}{*s, s.Totals()}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Sprintf("# failed to encode summary: %v\n", err)
	}
	return string(data)
}

// FormatterFor picks a formatter by file extension: .yaml and .yml get
// YAML, anything else Markdown built with opts.
func FormatterFor(path string, opts ...MarkdownOption) Formatter {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLFormatter{}
	}
	return NewMarkdownFormatter(opts...)
}
