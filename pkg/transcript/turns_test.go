package transcript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeConsecutiveTurns(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{
			"same speaker merged",
			"Teacher: Hello everyone\nTeacher: let's begin\nStudent: Ready",
			"Teacher: Hello everyone let's begin\nStudent: Ready",
		},
		{
			"music markers never merged",
			"Teacher: Listen\n<Music>\n<Music>\nTeacher: Again",
			"Teacher: Listen\n<Music>\n<Music>\nTeacher: Again",
		},
		{
			"unlabeled continuation joins open turn",
			"Observer: The class is\nvery engaged today",
			"Observer: The class is very engaged today",
		},
		{
			"unlabeled line with no open turn kept",
			"intro text\nTeacher: Hello",
			"intro text\nTeacher: Hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, MergeConsecutiveTurns(tt.input))
		})
	}
}

func TestStandardizeLabels(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"lower case label", "teacher: hi there", "Teacher: hi there"},
		{"upper case label", "OBSERVER: watching", "Observer: watching"},
		{"spaced colon", "Student : ready", "Student: ready"},
		{"music marker", "<music> plays softly", "<Music> plays softly"},
		{"already clean", "Teacher: Hello", "Teacher: Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, StandardizeLabels(tt.input))
		})
	}
}
