// Package prompts holds every template sent to the generation service, keyed
// by a fixed kind so callers never assemble prompt text ad hoc.
package prompts

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindTeacherTranscription Kind = iota
	KindObserverTranscription
	KindAlignment
	KindLessonAnalysis
	KindBestPractices
	KindReportGeneration
)

func (k Kind) String() string {
	switch k {
	case KindTeacherTranscription:
		return "teacher-transcription"
	case KindObserverTranscription:
		return "observer-transcription"
	case KindAlignment:
		return "alignment"
	case KindLessonAnalysis:
		return "lesson-analysis"
	case KindBestPractices:
		return "best-practices"
	case KindReportGeneration:
		return "report-generation"
	default:
		return "unknown"
	}
}

// Literal markers the alignment response must contain. The aligner treats a
// response missing either marker as malformed.
const (
	AlignedTeacherMarker  = "ALIGNED_TEACHER:"
	AlignedObserverMarker = "ALIGNED_OBSERVER:"
)

const TeacherTranscription = `CRITICAL INSTRUCTIONS:
1. Transcribe this entire audio file accurately with timestamps [MM:SS]
2. Label speech: "Teacher:" for teacher, "Student:" for students, "<Music>" for music
3. NEVER include student names - only use "Student:" label
4. Use voice recognition to distinguish teacher from other voices
5. Provide clear formatting with line breaks between segments
6. Do not make up content - transcribe only what you hear

Example format:
[00:15] Teacher: Welcome to class today.
[00:22] Student: Thank you for having us.
[00:30] <Music>`

const ObserverTranscription = `CRITICAL INSTRUCTIONS:
1. Transcribe this entire audio file accurately with timestamps [MM:SS]
2. Label ALL speech with "Observer:" and musical moments with "<Music>"
3. NEVER include student or teacher names in the transcription
4. Provide clear formatting with line breaks between segments
5. Do not make up content - transcribe only what you hear

Example format:
[00:15] Observer: The teacher greets the class warmly.
[00:45] <Music>`

// Alignment asks the service to interleave two timestamped transcriptions
// chronologically and emit them in the two-marker format.
func Alignment(teacherTranscription, observerContent string) string {
	return fmt.Sprintf(`CRITICAL INSTRUCTIONS FOR ALIGNMENT:
You have two transcriptions with timestamps.
Your task:
1. Align them chronologically based on timestamps
2. Remove ALL timestamps from the output
3. Present clean transcriptions side by side
4. For Teacher Audio: Keep "Teacher:" and "Student:" labels and "<Music>"
5. For Observer Audio: Keep ONLY "Observer:" labels and "<Music>"
6. Ensure matching moments appear at similar positions
7. Do NOT include any introductory text or explanations

Return the result in EXACTLY this format:
%s
[aligned teacher transcription]

%s
[aligned observer transcription]

TEACHER TRANSCRIPTION:
%s

OBSERVER CONTENT:
%s`, AlignedTeacherMarker, AlignedObserverMarker, teacherTranscription, observerContent)
}

// LessonAnalysis asks for lesson type, grade level, focus, and pedagogy.
func LessonAnalysis(transcription string) string {
	return fmt.Sprintf(`Analyze this music lesson transcription and identify:
1. Lesson type (e.g., general music, instrumental, vocal, theory)
2. Approximate grade level
3. Main teaching focus and objectives
4. Key pedagogical approaches observed

Transcription:
%s

Provide a concise analysis in 2-3 paragraphs.`, transcription)
}

// MergeAnalyses condenses per-chunk analyses of a long lesson into one.
func MergeAnalyses(partials []string) string {
	return fmt.Sprintf(`These are analyses of consecutive portions of the same music lesson.
Merge them into a single concise analysis (2-3 paragraphs) covering lesson type,
grade level, teaching focus, and pedagogical approaches. Resolve any
contradictions in favor of the majority view.

%s`, strings.Join(partials, "\n\n---\n\n"))
}

// BestPractices asks for research-grounded practices for the analyzed lesson.
func BestPractices(lessonAnalysis string) string {
	return fmt.Sprintf(`Based on this lesson analysis, research and summarize current best practices in music education for this context:

%s

Focus on:
1. Pedagogical strategies for this lesson type and grade level
2. Current research on effective teaching methods
3. Recommended approaches from music education literature

Provide a concise summary with specific, actionable insights.`, lessonAnalysis)
}

// ReportParams collects everything the report-generation template needs.
type ReportParams struct {
	LessonAnalysis     string
	BestPractices      string
	AlignedTeacher     string
	AlignedObserver    string
	EvaluationCriteria string
	Sections           []string
	Length             string
}

var lengthInstructions = map[string]string{
	"Brief":         "Keep the report concise (1-2 paragraphs per section).",
	"Standard":      "Provide a thorough analysis with appropriate detail (2-3 paragraphs per section).",
	"Comprehensive": "Provide an extensive, detailed analysis with multiple examples (3-4+ paragraphs per section).",
}

// ReportGeneration builds the observation-report prompt.
func ReportGeneration(p ReportParams) string {
	criteriaText := ""
	if p.EvaluationCriteria != "" {
		criteriaText = "\n\nEVALUATION CRITERIA PROVIDED:\n" + p.EvaluationCriteria
	}

	sectionsText := "Summary, Strengths, Areas for Growth"
	if len(p.Sections) > 0 {
		sectionsText = strings.Join(p.Sections, ", ")
	}

	lengthInstruction, ok := lengthInstructions[p.Length]
	if !ok {
		lengthInstruction = lengthInstructions["Standard"]
	}

	observer := p.AlignedObserver
	if observer == "" {
		observer = "No observer notes provided."
	}

	return fmt.Sprintf(`GENERATE MUSIC TEACHER OBSERVATION REPORT

CRITICAL INSTRUCTIONS:
1. Use quotations ONLY from teacher audio as evidence - NEVER quote observer
2. Be generous with praise but clear with constructive criticism
3. Maintain professional, neutral language throughout
4. If observer notes are provided, PRIORITIZE their observations and find evidence
5. Base evaluation on provided criteria, or use best practices research
6. Include these sections: %s
7. %s
8. VERIFY all quoted evidence comes from teacher audio, not observer
9. Do NOT include any 'Note:' or 'Disclaimer:' lines in your output. The application appends a single disclaimer at the bottom of the exported PDF.
%s

LESSON ANALYSIS:
%s

BEST PRACTICES:
%s

ALIGNED TEACHER TRANSCRIPTION (EVIDENCE SOURCE):
%s

ALIGNED OBSERVER NOTES (CONTEXT ONLY):
%s

Generate a professional observation report following the format:

LESSON SUMMARY:
[Brief overview of what occurred during the lesson]

STRENGTHS:
[Bullet points highlighting effective teaching practices with evidence]

AREAS FOR GROWTH:
[Bullet points with constructive feedback and specific suggestions]

Do not include any meta-commentary or explanations - just the report content.`,
		sectionsText, lengthInstruction, criteriaText, p.LessonAnalysis,
		p.BestPractices, p.AlignedTeacher, observer)
}
