// Package pipeline runs one report-generation request end to end:
// transcribe, align, analyze, research, generate, render. All state is
// request-local; nothing is shared between invocations.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"observation-processor/pkg/api"
	"observation-processor/pkg/chunker"
	"observation-processor/pkg/config"
	"observation-processor/pkg/pdf"
	"observation-processor/pkg/prompts"
	"observation-processor/pkg/report"
	"observation-processor/pkg/rubric"
	"observation-processor/pkg/transcript"
)

// TextGenerator is the generation-service boundary the pipeline depends on.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts api.GenerateOptions) (string, error)
	GenerateWithAudio(ctx context.Context, prompt, mimeType string, audio []byte, opts api.GenerateOptions) (string, error)
}

type Pipeline struct {
	gen TextGenerator
	cfg *config.Config
}

func New(gen TextGenerator, cfg *config.Config) *Pipeline {
	return &Pipeline{gen: gen, cfg: cfg}
}

// AudioInput is an uploaded recording plus its MIME type.
type AudioInput struct {
	Data []byte
	MIME string
}

// ReportRequest carries every input for one observation report.
type ReportRequest struct {
	TeacherName   string
	ObserverName  string
	TeacherAudio  *AudioInput
	ObserverAudio *AudioInput
	ObserverNotes string
	CriteriaText  string
	CriteriaPDF   []byte
	Sections      []string
	Length        string
	Date          time.Time
}

// ReportResult is everything the request produced, including the
// intermediate texts the caller may want to show alongside the document.
type ReportResult struct {
	TeacherTranscription string
	ObserverContent      string
	AlignedTeacher       string
	AlignedObserver      string
	LessonAnalysis       string
	BestPractices        string
	ReportText           string
	Document             pdf.Document
}

// Run executes the full report pipeline. Transcription and report
// generation failures are returned; analysis, research, and alignment
// degrade silently to keep the report achievable.
func (p *Pipeline) Run(ctx context.Context, req ReportRequest) (*ReportResult, error) {
	startTime := time.Now()
	log.Printf("Pipeline start | teacher audio: %v | observer audio: %v | notes: %d chars",
		req.TeacherAudio != nil, req.ObserverAudio != nil, len(req.ObserverNotes))

	if req.TeacherAudio == nil && req.ObserverAudio == nil &&
		strings.TrimSpace(req.ObserverNotes) == "" {
		return nil, fmt.Errorf("no inputs: provide teacher audio, observer audio, or observer notes")
	}

	teacherContent, observerContent, err := p.transcribe(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &ReportResult{
		TeacherTranscription: teacherContent,
		ObserverContent:      observerContent,
	}

	log.Println("Aligning transcriptions")
	aligner := transcript.NewAligner(p.alignerGenerator())
	alignedTeacher, alignedObserver := aligner.Align(ctx, teacherContent, observerContent)
	result.AlignedTeacher = transcript.MergeConsecutiveTurns(alignedTeacher)
	result.AlignedObserver = transcript.MergeConsecutiveTurns(alignedObserver)

	result.LessonAnalysis = p.analyzeLesson(ctx, result.AlignedTeacher, result.AlignedObserver)
	result.BestPractices = p.researchBestPractices(ctx, result.LessonAnalysis)

	criteria := rubric.FromUpload(req.CriteriaPDF, req.CriteriaText)

	log.Println("Generating observation report")
	reportText, err := p.gen.Generate(ctx, prompts.ReportGeneration(prompts.ReportParams{
		LessonAnalysis:     result.LessonAnalysis,
		BestPractices:      result.BestPractices,
		AlignedTeacher:     result.AlignedTeacher,
		AlignedObserver:    result.AlignedObserver,
		EvaluationCriteria: criteria,
		Sections:           req.Sections,
		Length:             req.Length,
	}), api.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("report generation failed: %w", err)
	}
	result.ReportText = report.FlattenMarkdown(reportText)

	doc, err := pdf.ProduceReportDocument(pdf.ReportParams{
		ReportText:      result.ReportText,
		TeacherName:     req.TeacherName,
		ObserverName:    req.ObserverName,
		DateStr:         req.Date.Format("January 2, 2006"),
		HasTeacherAudio: req.TeacherAudio != nil,
	})
	if err != nil {
		return nil, err
	}
	result.Document = doc

	log.Printf("Pipeline completed in %v | report: %d words | tier: %s",
		time.Since(startTime), chunker.WordCount(result.ReportText), doc.Tier)
	return result, nil
}

// Transcript aligns two raw transcripts and renders the dual-column
// document, returning the aligned pair alongside the payload.
func (p *Pipeline) Transcript(ctx context.Context, teacherText, observerText string, date time.Time) (pdf.Document, string, string, error) {
	aligner := transcript.NewAligner(p.alignerGenerator())
	alignedTeacher, alignedObserver := aligner.Align(ctx, teacherText, observerText)
	alignedTeacher = transcript.MergeConsecutiveTurns(alignedTeacher)
	alignedObserver = transcript.MergeConsecutiveTurns(alignedObserver)

	doc, err := pdf.ProduceTranscriptDocument(alignedTeacher, alignedObserver, date.Format("January 2, 2006"))
	if err != nil {
		return pdf.Document{}, "", "", err
	}
	return doc, alignedTeacher, alignedObserver, nil
}

// transcribe runs the teacher and observer transcription calls concurrently.
// Observer notes are appended to (or substitute for) observer audio.
func (p *Pipeline) transcribe(ctx context.Context, req ReportRequest) (string, string, error) {
	var teacherContent, observerAudioContent string

	g, gctx := errgroup.WithContext(ctx)

	if req.TeacherAudio != nil {
		g.Go(func() error {
			log.Printf("Transcribing teacher audio (%d bytes)", len(req.TeacherAudio.Data))
			text, err := p.gen.GenerateWithAudio(gctx, prompts.TeacherTranscription,
				req.TeacherAudio.MIME, req.TeacherAudio.Data, api.DefaultOptions())
			if err != nil {
				return fmt.Errorf("teacher transcription failed: %w", err)
			}
			teacherContent = transcript.CleanTranscription(text)
			return nil
		})
	}

	if req.ObserverAudio != nil {
		g.Go(func() error {
			log.Printf("Transcribing observer audio (%d bytes)", len(req.ObserverAudio.Data))
			text, err := p.gen.GenerateWithAudio(gctx, prompts.ObserverTranscription,
				req.ObserverAudio.MIME, req.ObserverAudio.Data, api.DefaultOptions())
			if err != nil {
				return fmt.Errorf("observer transcription failed: %w", err)
			}
			observerAudioContent = transcript.CleanTranscription(text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", "", err
	}

	observerContent := observerAudioContent
	if notes := strings.TrimSpace(req.ObserverNotes); notes != "" {
		if observerContent != "" {
			observerContent += "\n\n" + notes
		} else {
			observerContent = notes
		}
	}

	log.Printf("Transcription done | teacher: %d words | observer: %d words",
		chunker.WordCount(teacherContent), chunker.WordCount(observerContent))
	return teacherContent, observerContent, nil
}

// analyzeLesson identifies lesson type, level, and focus. Long transcripts
// are chunked and analyzed with bounded concurrency, then merged. Failure
// yields a placeholder rather than aborting the pipeline.
func (p *Pipeline) analyzeLesson(ctx context.Context, alignedTeacher, alignedObserver string) string {
	source := alignedTeacher
	if strings.TrimSpace(source) == "" {
		source = alignedObserver
	}
	if strings.TrimSpace(source) == "" {
		return "No lesson content available for analysis."
	}

	chunks := chunker.ChunkByWords(source, p.cfg.AnalysisChunkWords, p.cfg.AnalysisOverlap)
	if len(chunks) == 1 {
		analysis, err := p.gen.Generate(ctx, prompts.LessonAnalysis(chunks[0]), api.DefaultOptions())
		if err != nil {
			log.Printf("Lesson analysis failed: %v", err)
			return fmt.Sprintf("Lesson analysis could not be completed: %v", err)
		}
		return analysis
	}

	log.Printf("Analyzing lesson in %d chunks (max %d concurrent)", len(chunks), p.cfg.MaxConcurrent)
	partials := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.MaxConcurrent)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			analysis, err := p.gen.Generate(gctx, prompts.LessonAnalysis(chunk), api.DefaultOptions())
			if err != nil {
				return fmt.Errorf("analyze chunk %d: %w", i, err)
			}
			partials[i] = analysis
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("Chunked lesson analysis failed: %v", err)
		return fmt.Sprintf("Lesson analysis could not be completed: %v", err)
	}

	merged, err := p.gen.Generate(ctx, prompts.MergeAnalyses(partials), api.DefaultOptions())
	if err != nil {
		log.Printf("Analysis merge failed, joining partials: %v", err)
		return strings.Join(partials, "\n\n")
	}
	return merged
}

// researchBestPractices runs the search-augmented research call. Failure
// degrades to a generic note, as the report prompt tolerates it.
func (p *Pipeline) researchBestPractices(ctx context.Context, lessonAnalysis string) string {
	opts := api.DefaultOptions()
	opts.EnableSearch = true

	research, err := p.gen.Generate(ctx, prompts.BestPractices(lessonAnalysis), opts)
	if err != nil {
		log.Printf("Best practices research failed: %v", err)
		return fmt.Sprintf("Best practices research completed with general music education principles. (Note: %v)", err)
	}
	return research
}

// alignerGenerator adapts the pipeline's generator to the aligner's
// single-method boundary with default options.
func (p *Pipeline) alignerGenerator() transcript.Generator {
	if p.gen == nil {
		return nil
	}
	return generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return p.gen.Generate(ctx, prompt, api.DefaultOptions())
	})
}

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
