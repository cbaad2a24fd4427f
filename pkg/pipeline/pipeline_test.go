package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"observation-processor/pkg/api"
	"observation-processor/pkg/config"
	"observation-processor/pkg/pdf"
)

type fakeGen struct {
	failAnalysis bool
	failResearch bool
	failReport   bool
	audioCalls   int
	searchUsed   bool
}

func (f *fakeGen) Generate(ctx context.Context, prompt string, opts api.GenerateOptions) (string, error) {
	switch {
	case strings.Contains(prompt, "CRITICAL INSTRUCTIONS FOR ALIGNMENT"):
		return "ALIGNED_TEACHER:\nTeacher: Hello class\n\nALIGNED_OBSERVER:\nObserver: Teacher greets students", nil
	case strings.Contains(prompt, "Analyze this music lesson"):
		if f.failAnalysis {
			return "", errors.New("analysis outage")
		}
		return "General music lesson, grade 3.", nil
	case strings.Contains(prompt, "best practices in music education"):
		f.searchUsed = opts.EnableSearch
		if f.failResearch {
			return "", errors.New("research outage")
		}
		return "Use call-and-response activities.", nil
	case strings.Contains(prompt, "GENERATE MUSIC TEACHER OBSERVATION REPORT"):
		if f.failReport {
			return "", errors.New("report outage")
		}
		return "LESSON SUMMARY:\n\nA strong rehearsal with clear routines.", nil
	default:
		return "", errors.New("unexpected prompt")
	}
}

func (f *fakeGen) GenerateWithAudio(ctx context.Context, prompt, mimeType string, audio []byte, opts api.GenerateOptions) (string, error) {
	f.audioCalls++
	if strings.Contains(prompt, `"Observer:"`) {
		return "[00:02] Observer: Teacher greets students", nil
	}
	return "[00:01] Teacher: Hello class", nil
}

func testConfig() *config.Config {
	return &config.Config{
		MaxConcurrent:      2,
		AnalysisChunkWords: 3000,
		AnalysisOverlap:    100,
		MaxUploadBytes:     1 << 20,
	}
}

func TestRunFullPipeline(t *testing.T) {
	gen := &fakeGen{}
	pipe := New(gen, testConfig())

	result, err := pipe.Run(context.Background(), ReportRequest{
		TeacherName:  "J. Rivera",
		ObserverName: "M. Chen",
		TeacherAudio: &AudioInput{Data: []byte("audio"), MIME: "audio/mpeg"},
		ObserverAudio: &AudioInput{
			Data: []byte("audio2"), MIME: "audio/mpeg",
		},
		Date: time.Now(),
	})
	require.NoError(t, err)

	require.Equal(t, 2, gen.audioCalls)
	require.Equal(t, "Teacher: Hello class", result.AlignedTeacher)
	require.Equal(t, "Observer: Teacher greets students", result.AlignedObserver)
	require.Equal(t, "General music lesson, grade 3.", result.LessonAnalysis)
	require.True(t, gen.searchUsed, "research call should enable search")
	require.Contains(t, result.ReportText, "LESSON SUMMARY:")
	require.Equal(t, pdf.TierRichPDF, result.Document.Tier)
	require.Equal(t, "application/pdf", result.Document.MIME)
}

func TestRunNotesOnly(t *testing.T) {
	pipe := New(&fakeGen{}, testConfig())

	result, err := pipe.Run(context.Background(), ReportRequest{
		ObserverNotes: "Observer: Students enter quietly and unpack instruments.",
		Date:          time.Now(),
	})
	require.NoError(t, err)
	require.Empty(t, result.TeacherTranscription)
	require.NotEmpty(t, result.ReportText)
	require.Equal(t, pdf.TierRichPDF, result.Document.Tier)
}

func TestRunRejectsEmptyRequest(t *testing.T) {
	pipe := New(&fakeGen{}, testConfig())

	_, err := pipe.Run(context.Background(), ReportRequest{Date: time.Now()})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no inputs")
}

func TestRunToleratesAnalysisAndResearchFailures(t *testing.T) {
	gen := &fakeGen{failAnalysis: true, failResearch: true}
	pipe := New(gen, testConfig())

	result, err := pipe.Run(context.Background(), ReportRequest{
		ObserverNotes: "Observer: Lesson in progress.",
		Date:          time.Now(),
	})
	require.NoError(t, err)
	require.Contains(t, result.LessonAnalysis, "could not be completed")
	require.Contains(t, result.BestPractices, "general music education principles")
	require.Equal(t, pdf.TierRichPDF, result.Document.Tier)
}

func TestRunPropagatesReportFailure(t *testing.T) {
	pipe := New(&fakeGen{failReport: true}, testConfig())

	_, err := pipe.Run(context.Background(), ReportRequest{
		ObserverNotes: "Observer: Lesson in progress.",
		Date:          time.Now(),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "report generation failed")
}

func TestTranscriptWithoutObserver(t *testing.T) {
	pipe := New(&fakeGen{}, testConfig())

	doc, alignedTeacher, alignedObserver, err := pipe.Transcript(context.Background(),
		"[00:01] Teacher: Hello class", "", time.Now())
	require.NoError(t, err)
	require.Equal(t, "Teacher: Hello class", alignedTeacher)
	require.Empty(t, alignedObserver)
	require.Equal(t, pdf.TierRichPDF, doc.Tier)
}

func TestTranscriptEmptyTeacherRejected(t *testing.T) {
	pipe := New(&fakeGen{}, testConfig())

	_, _, _, err := pipe.Transcript(context.Background(), "", "", time.Now())
	require.Error(t, err)

	var verr *pdf.ValidationError
	require.ErrorAs(t, err, &verr)
}
