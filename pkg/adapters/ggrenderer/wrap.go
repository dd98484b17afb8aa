package ggrenderer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// wrapText splits text into visual lines. Explicit newlines always break.
// When maxWidth > 0, lines are also broken greedily so that no line is
// wider than maxWidth: between words, between CJK characters, and inside a
// word that alone does not fit.
func wrapText(text string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimRight(para, "\r")
		if maxWidth <= 0 {
			lines = append(lines, para)
			continue
		}
		lines = append(lines, wrapParagraph(para, maxWidth, measure)...)
	}
	return lines
}

func wrapParagraph(para string, maxWidth float64, measure func(string) float64) []string {
	var pieces []string
	for _, tok := range tokenize(para) {
		if utf8.RuneCountInString(tok) > 1 && measure(strings.TrimSpace(tok)) > maxWidth {
			for _, r := range tok {
				pieces = append(pieces, string(r))
			}
			continue
		}
		pieces = append(pieces, tok)
	}

	var lines []string
	line := ""
	for _, p := range pieces {
		candidate := line + p
		if strings.TrimSpace(line) != "" && measure(strings.TrimRight(candidate, " ")) > maxWidth {
			lines = append(lines, strings.TrimRight(line, " "))
			candidate = strings.TrimLeft(p, " ")
		}
		line = candidate
	}
	return append(lines, strings.TrimRight(line, " "))
}

// tokenize splits a paragraph into break opportunities. A word keeps its
// trailing spaces; every CJK character is a token of its own.
func tokenize(s string) []string {
	var (
		tokens []string
		cur    strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case isCJK(r):
			flush()
			tokens = append(tokens, string(r))
		case r == ' ' || r == '\t':
			cur.WriteRune(' ')
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) ||
		(r >= 0x3000 && r <= 0x303f) || // CJK symbols and punctuation
		(r >= 0xff00 && r <= 0xffef) // half- and full-width forms
}
