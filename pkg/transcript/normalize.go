package transcript

import (
	"regexp"
	"strings"
	"unicode"
)

var preamblePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)thank you for providing.*?file:`),
	regexp.MustCompile(`(?is)i will transcribe.*?file:`),
	regexp.MustCompile(`(?is)here is the transcription.*?:`),
}

var timestampPattern = regexp.MustCompile(`\[\d{2}:\d{2}\]\s*`)

// Replacements for punctuation outside the Latin-1 range that the core PDF
// fonts cannot draw. Anything not in this table and above U+00FF is dropped
// during sanitization.
var latin1Replacements = map[rune]string{
	'—': "-",   // em dash
	'–': "-",   // en dash
	'‒': "-",   // figure dash
	'‑': "-",   // non-breaking hyphen
	'‘': "'",   // left single quote
	'’': "'",   // right single quote
	'‚': "'",   // single low-9 quote
	'‛': "'",   // single high-reversed-9 quote
	'“': `"`,   // left double quote
	'”': `"`,   // right double quote
	'„': `"`,   // double low-9 quote
	'‟': `"`,   // double high-reversed-9 quote
	'‹': "'",   // single left angle quote
	'›': "'",   // single right angle quote
	'…': "...", // ellipsis
	'•': "-",   // bullet
	'‣': "-",   // triangular bullet
	'⁃': "-",   // hyphen bullet
	'·': "-",   // middle dot
	' ': " ",   // non-breaking space
	' ': " ",   // narrow no-break space
	' ': " ",   // en space
	' ': " ",   // em space
	' ': " ",   // thin space
	'×': "x",   // multiplication sign
	'÷': "/",   // division sign
	'−': "-",   // minus sign
	'≠': "!=",  // not equal
	'≤': "<=",  // less than or equal
	'≥': ">=",  // greater than or equal
	'€': "EUR", // euro sign
	'£': "GBP", // pound sign
	'¥': "YEN", // yen sign
}

// maxTokenRun is the longest run of non-space characters SanitizeForRender
// leaves unbroken; a space is inserted after it so MultiCell can wrap URLs
// and similar tokens.
const maxTokenRun = 60

// CleanTranscription removes model preamble boilerplate from a raw
// transcription and trims surrounding whitespace.
func CleanTranscription(text string) string {
	if text == "" {
		return ""
	}
	for _, p := range preamblePatterns {
		text = p.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

// StripTimestamps removes [MM:SS] markers and any whitespace that follows
// them.
func StripTimestamps(text string) string {
	if text == "" {
		return ""
	}
	return timestampPattern.ReplaceAllString(text, "")
}

// SanitizeForRender rewrites text so the Latin-1 PDF fonts can draw it:
// common Unicode punctuation is mapped to printable equivalents, line
// endings are normalized to \n, unbroken runs longer than maxTokenRun get a
// wrap point, and any remaining character above U+00FF is dropped. The
// result of sanitizing twice equals sanitizing once.
func SanitizeForRender(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var replaced strings.Builder
	replaced.Grow(len(text))
	for _, r := range text {
		if sub, ok := latin1Replacements[r]; ok {
			replaced.WriteString(sub)
			continue
		}
		replaced.WriteRune(r)
	}

	text = replaced.String()
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out strings.Builder
	out.Grow(len(text))
	run := 0
	for _, r := range text {
		if r >= 256 {
			continue
		}
		if unicode.IsSpace(r) {
			run = 0
			out.WriteRune(r)
			continue
		}
		if run == maxTokenRun {
			out.WriteByte(' ')
			run = 0
		}
		out.WriteRune(r)
		run++
	}

	return out.String()
}
