package report

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlattenMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \n ", ""},
		{
			"plain text passthrough",
			"LESSON SUMMARY:\n\nAll good.",
			"LESSON SUMMARY:\n\nAll good.",
		},
		{
			"emphasis stripped",
			"The teacher used **clear** and *warm* instructions.",
			"The teacher used clear and warm instructions.",
		},
		{
			"bold header stripped",
			"**STRENGTHS:**",
			"STRENGTHS:",
		},
		{
			"heading becomes section line",
			"## Strengths\n\nGood pacing throughout.",
			"STRENGTHS:\n\nGood pacing throughout.",
		},
		{
			"heading with trailing colon not doubled",
			"# Lesson Summary:",
			"LESSON SUMMARY:",
		},
		{
			"list items become dash bullets",
			"- Good pacing\n- *Warm* tone",
			"- Good pacing\n- Warm tone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, FlattenMarkdown(tt.input))
		})
	}
}

func TestFlattenMarkdownFullReport(t *testing.T) {
	input := "## Lesson Summary\n\nThe class rehearsed a new piece.\n\n## Strengths\n\n- **Clear** modeling\n- Strong routines"

	got := FlattenMarkdown(input)
	require.Equal(t,
		"LESSON SUMMARY:\n\nThe class rehearsed a new piece.\n\nSTRENGTHS:\n\n- Clear modeling\n- Strong routines",
		got)
}
