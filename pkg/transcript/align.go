package transcript

import (
	"context"
	"log"
	"strings"

	"observation-processor/pkg/prompts"
)

// Generator is the slice of the generation service the aligner needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Aligner reconciles a teacher and an observer transcription into a
// chronologically comparable, timestamp-free pair. Alignment is delegated to
// the generation service; when the call fails or the response is malformed
// the aligner falls back to stripping timestamps from each input
// independently. The fallback performs no reordering - there is no local
// chronological model without the service.
type Aligner struct {
	gen Generator
}

func NewAligner(gen Generator) *Aligner {
	return &Aligner{gen: gen}
}

// Align never fails: it always returns a usable pair, possibly the
// timestamp-stripped originals.
func (a *Aligner) Align(ctx context.Context, teacherText, observerText string) (string, string) {
	teacherText = CleanTranscription(teacherText)
	observerText = CleanTranscription(observerText)

	if observerText == "" {
		return StripTimestamps(teacherText), ""
	}

	if a.gen == nil {
		log.Println("No generation service configured, stripping timestamps only")
		return StripTimestamps(teacherText), StripTimestamps(observerText)
	}

	result, err := a.gen.Generate(ctx, prompts.Alignment(teacherText, observerText))
	if err != nil {
		log.Printf("Alignment call failed, falling back to timestamp removal: %v", err)
		return StripTimestamps(teacherText), StripTimestamps(observerText)
	}

	if !strings.Contains(result, prompts.AlignedTeacherMarker) ||
		!strings.Contains(result, prompts.AlignedObserverMarker) {
		log.Println("Alignment response missing markers, falling back to timestamp removal")
		return StripTimestamps(teacherText), StripTimestamps(observerText)
	}

	parts := strings.SplitN(result, prompts.AlignedObserverMarker, 2)
	teacherPart := strings.Replace(parts[0], prompts.AlignedTeacherMarker, "", 1)
	observerPart := parts[1]

	alignedTeacher := CleanTranscription(teacherPart)
	alignedObserver := CleanTranscription(observerPart)

	log.Printf("Alignment complete: teacher %d words, observer %d words",
		len(strings.Fields(alignedTeacher)), len(strings.Fields(alignedObserver)))

	return StandardizeLabels(alignedTeacher), StandardizeLabels(alignedObserver)
}
