package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeForRenderIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"   \n\n  ",
		"plain ascii text",
		"dashes — and – quotes “quoted” ‘single’",
		"ellipsis… bullet • price €5 and £7",
		strings.Repeat("a", 200),
		"line one\r\nline two\rline three",
		"mixed héllo 世界 content",
	}

	for _, input := range inputs {
		once := SanitizeForRender(input)
		twice := SanitizeForRender(once)
		require.Equal(t, once, twice, "sanitize not idempotent for %q", input)
	}
}

func TestSanitizeForRender(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \n\n  ", ""},
		{"em dash", "a — b", "a - b"},
		{"curly quotes", "“hello” ‘hi’", `"hello" 'hi'`},
		{"ellipsis", "wait…", "wait..."},
		{"currency", "€5 £7 ¥9", "EUR5 GBP7 YEN9"},
		{"math symbols", "a ≤ b ≠ c", "a <= b != c"},
		{"non-breaking space", "a b", "a b"},
		{"crlf normalized", "one\r\ntwo\rthree", "one\ntwo\nthree"},
		{"non-latin dropped", "héllo 世界", "héllo "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, SanitizeForRender(tt.input))
		})
	}
}

func TestSanitizeForRenderInsertsWrapPoints(t *testing.T) {
	got := SanitizeForRender(strings.Repeat("a", 130))
	want := strings.Repeat("a", 60) + " " + strings.Repeat("a", 60) + " " + strings.Repeat("a", 10)
	require.Equal(t, want, got)

	// Exactly 60 characters followed by a space needs no break.
	exact := strings.Repeat("b", 60) + " tail"
	require.Equal(t, exact, SanitizeForRender(exact))
}

func TestCleanTranscription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \n ", ""},
		{
			"thank you preamble",
			"Thank you for providing the audio file: [00:01] Teacher: Hi",
			"[00:01] Teacher: Hi",
		},
		{
			"transcribe preamble",
			"I will transcribe your uploaded file: Teacher: Welcome",
			"Teacher: Welcome",
		},
		{"no preamble", "Teacher: Hello class", "Teacher: Hello class"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, CleanTranscription(tt.input))
		})
	}
}

func TestStripTimestamps(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"single marker", "[03:45] Teacher: Hello", "Teacher: Hello"},
		{"marker without trailing space", "Teacher: Hello [12:02]end", "Teacher: Hello end"},
		{
			"multiple lines",
			"[00:15] Teacher: Welcome.\n[00:22] Student: Thanks.",
			"Teacher: Welcome.\nStudent: Thanks.",
		},
		{"malformed marker untouched", "[3:45] Teacher: Hi", "[3:45] Teacher: Hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, StripTimestamps(tt.input))
		})
	}
}
