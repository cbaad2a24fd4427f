// Package report turns free-form generated narrative into a per-line
// document model that every renderer consumes, so header and bullet
// detection lives in exactly one place.
package report

import (
	"strings"
	"unicode"
)

type LineKind int

const (
	Blank LineKind = iota
	SectionHeader
	SubHeader
	Bullet
	Body
)

func (k LineKind) String() string {
	switch k {
	case Blank:
		return "blank"
	case SectionHeader:
		return "section-header"
	case SubHeader:
		return "sub-header"
	case Bullet:
		return "bullet"
	case Body:
		return "body"
	default:
		return "unknown"
	}
}

// Line is a single classified line of report text.
type Line struct {
	Kind LineKind
	Text string
}

var bulletPrefixes = []string{"- ", "* ", "• "}

// Sentence-initial words that disqualify a short capitalized line from being
// a sub-header. The heuristic accepts a known false-positive rate: a short
// exclamatory sentence without terminal punctuation can still classify as a
// sub-header.
var sentenceStarts = []string{
	"The ", "This ", "When ", "After ", "Before ", "During ",
	"To ", "In ", "As ", "For ", "With ",
}

var speakerStarts = []string{"Teacher:", "Student:", "Observer:"}

// ClassifyLines maps every line of report text to a kind. Classification is
// a pure function of the line's own content; surrounding lines never change
// the outcome.
func ClassifyLines(text string) []Line {
	rawLines := strings.Split(text, "\n")
	lines := make([]Line, 0, len(rawLines))
	for _, raw := range rawLines {
		line := strings.TrimSpace(raw)
		if line == "" {
			lines = append(lines, Line{Kind: Blank})
			continue
		}
		lines = append(lines, Line{Kind: classifyLine(line), Text: line})
	}
	return lines
}

func classifyLine(line string) LineKind {
	if isSectionHeader(line) {
		return SectionHeader
	}
	if isSubHeader(line) {
		return SubHeader
	}
	if hasAnyPrefix(line, bulletPrefixes) {
		return Bullet
	}
	return Body
}

// isSectionHeader: fully upper-case, ends with a colon, at most five tokens.
func isSectionHeader(line string) bool {
	if !strings.HasSuffix(line, ":") || len(strings.Fields(line)) > 5 {
		return false
	}
	return isUpper(line)
}

// isSubHeader: a short capitalized title line - 2 to 12 tokens, no bullet or
// speaker prefix, no sentence-initial word, no terminal punctuation.
func isSubHeader(line string) bool {
	tokens := len(strings.Fields(line))
	if tokens < 2 || tokens > 12 {
		return false
	}
	if hasAnyPrefix(line, bulletPrefixes) || hasAnyPrefix(line, sentenceStarts) || hasAnyPrefix(line, speakerStarts) {
		return false
	}
	switch line[len(line)-1] {
	case '.', '!', '?', ',', ';':
		return false
	}
	first := []rune(line)[0]
	return unicode.IsUpper(first)
}

// isUpper mirrors the usual "is upper-case" test: at least one cased
// character and no lower-case ones.
func isUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
