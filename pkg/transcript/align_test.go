package transcript

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	response string
	err      error
	calls    int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.response, f.err
}

func TestAlignEmptyInputs(t *testing.T) {
	gen := &fakeGenerator{}
	aligner := NewAligner(gen)

	teacher, observer := aligner.Align(context.Background(), "", "")
	require.Equal(t, "", teacher)
	require.Equal(t, "", observer)
	require.Zero(t, gen.calls)
}

func TestAlignEmptyObserverSkipsCall(t *testing.T) {
	gen := &fakeGenerator{}
	aligner := NewAligner(gen)

	teacher, observer := aligner.Align(context.Background(), "[00:01] Teacher: Hi", "")
	require.Equal(t, "Teacher: Hi", teacher)
	require.Equal(t, "", observer)
	require.Zero(t, gen.calls)
}

func TestAlignSuccess(t *testing.T) {
	gen := &fakeGenerator{
		response: "ALIGNED_TEACHER:\nTeacher: Hello class\n<Music>\n\nALIGNED_OBSERVER:\nObserver: Lesson begins\n<Music>",
	}
	aligner := NewAligner(gen)

	teacher, observer := aligner.Align(context.Background(),
		"[00:01] Teacher: Hello class\n[00:10] <Music>",
		"[00:02] Observer: Lesson begins\n[00:11] <Music>")

	require.Equal(t, 1, gen.calls)
	require.Equal(t, "Teacher: Hello class\n<Music>", teacher)
	require.Equal(t, "Observer: Lesson begins\n<Music>", observer)
}

func TestAlignMalformedResponseFallsBack(t *testing.T) {
	gen := &fakeGenerator{response: "Here you go, no markers at all"}
	aligner := NewAligner(gen)

	teacher, observer := aligner.Align(context.Background(),
		"[00:01] Teacher: Hi", "[00:02] Observer: Watching")

	require.Equal(t, 1, gen.calls)
	require.Equal(t, "Teacher: Hi", teacher)
	require.Equal(t, "Observer: Watching", observer)
}

func TestAlignCallErrorFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("service unavailable")}
	aligner := NewAligner(gen)

	teacher, observer := aligner.Align(context.Background(),
		"[00:01] Teacher: Hi", "[00:02] Observer: Watching")

	require.Equal(t, "Teacher: Hi", teacher)
	require.Equal(t, "Observer: Watching", observer)
}

func TestAlignNilGeneratorFallsBack(t *testing.T) {
	aligner := NewAligner(nil)

	teacher, observer := aligner.Align(context.Background(),
		"[00:01] Teacher: Hi", "[00:02] Observer: Watching")

	require.Equal(t, "Teacher: Hi", teacher)
	require.Equal(t, "Observer: Watching", observer)
}
