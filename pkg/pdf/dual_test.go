package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPadSegments(t *testing.T) {
	tests := []struct {
		name     string
		teacher  []string
		observer []string
		wantLen  int
	}{
		{"teacher longer", []string{"a", "b", "c"}, []string{"x"}, 3},
		{"observer longer", []string{"a"}, []string{"x", "y", "z", "w"}, 4},
		{"equal", []string{"a", "b"}, []string{"x", "y"}, 2},
		{"both empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teacher, observer := padSegments(tt.teacher, tt.observer)
			require.Len(t, teacher, tt.wantLen)
			require.Len(t, observer, tt.wantLen)
		})
	}
}

func TestRenderDualTranscript(t *testing.T) {
	teacherText := "Teacher: Welcome to class today.\nStudent: Thank you.\n<Music>\nTeacher: Let's tune."
	observerText := "Observer: The teacher greets the class warmly.\n<Music>"

	data, err := RenderDualTranscript(teacherText, observerText)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRenderDualTranscriptEmptyObserverSubstituted(t *testing.T) {
	data, err := RenderDualTranscript("Teacher: Hello class.", "")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRenderDualTranscriptEmptyTeacherRejected(t *testing.T) {
	_, err := RenderDualTranscript("", "Observer: Notes")
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "teacher transcription", verr.Field)
}

func TestRenderDualTranscriptManyRowsPaginates(t *testing.T) {
	var teacher, observer string
	for i := 0; i < 120; i++ {
		teacher += "Teacher: We will repeat the passage one more time with dynamics.\n"
		observer += "Observer: Students follow the direction and adjust immediately.\n"
	}

	data, err := RenderDualTranscript(teacher, observer)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
