package pdf

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Tier is the degradation level a document was produced at. Tiers are
// strictly ordered and never revisited: a rich-PDF failure degrades straight
// to plain text, with no retry, because layout failures are treated as
// non-transient.
type Tier int

const (
	TierRichPDF Tier = iota
	TierPlainText
)

func (t Tier) String() string {
	if t == TierPlainText {
		return "plain-text"
	}
	return "rich-pdf"
}

// Artifact names used in delivery filenames.
const (
	ArtifactReport     = "observation_report"
	ArtifactTranscript = "transcript"
	ArtifactSolo       = "solo_session"
)

// Document is a deliverable payload plus the tier that produced it.
type Document struct {
	Tier Tier
	MIME string
	Ext  string
	Data []byte
}

// Filename suggests a delivery filename for the document.
func (d Document) Filename(artifact string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", artifact, now.Format("20060102_150405"), d.Ext)
}

// ProduceReportDocument renders the observation report, degrading to a plain
// text payload that preserves the report verbatim when PDF layout fails.
// Validation errors propagate; they are caller contract violations, not
// render failures.
func ProduceReportDocument(p ReportParams) (Document, error) {
	if err := ValidateReportInputs(p.ReportText, p.TeacherName, p.ObserverName, p.DateStr); err != nil {
		return Document{}, err
	}
	return produce("observation report",
		func() ([]byte, error) { return RenderReport(p) },
		func() string { return ReportTextFallback(p) },
	), nil
}

// ProduceTranscriptDocument renders the dual-column transcript with the same
// two-tier contract.
func ProduceTranscriptDocument(teacherText, observerText, dateStr string) (Document, error) {
	if err := validateTextContent(teacherText, "teacher transcription"); err != nil {
		return Document{}, err
	}
	return produce("transcript",
		func() ([]byte, error) { return RenderDualTranscript(teacherText, observerText) },
		func() string { return TranscriptTextFallback(teacherText, observerText, dateStr) },
	), nil
}

// ProduceSoloDocument renders the solo reflection export with the same
// two-tier contract.
func ProduceSoloDocument(transcription string, chat []ChatMessage, dateStr string) (Document, error) {
	if len(chat) == 0 {
		if err := validateTextContent(transcription, "transcription"); err != nil {
			return Document{}, err
		}
	}
	return produce("solo session",
		func() ([]byte, error) { return RenderSoloSession(transcription, chat, dateStr) },
		func() string { return SoloTextFallback(transcription, chat, dateStr) },
	), nil
}

// produce drives the tier state machine: try the rich renderer once, then
// fall back to plain text. The plain-text tier cannot fail - it is pure
// string formatting.
func produce(artifact string, render func() ([]byte, error), fallbackText func() string) Document {
	data, err := tryRender(render)
	if err == nil {
		return Document{Tier: TierRichPDF, MIME: "application/pdf", Ext: "pdf", Data: data}
	}

	log.Printf("%s PDF rendering failed, degrading to plain text: %v", artifact, err)
	return Document{
		Tier: TierPlainText,
		MIME: "text/plain; charset=utf-8",
		Ext:  "txt",
		Data: []byte(fallbackText()),
	}
}

// tryRender converts renderer panics into RenderErrors so degradation covers
// drawing-library faults of any shape.
func tryRender(render func() ([]byte, error)) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RenderError{Op: "render", Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return render()
}

var divider = strings.Repeat("=", 80)

// ReportTextFallback is the plain-text rendering of an observation report.
// It carries the report content verbatim.
func ReportTextFallback(p ReportParams) string {
	teacherName := p.TeacherName
	if teacherName == "" {
		teacherName = "Not specified"
	}
	observerName := p.ObserverName
	if observerName == "" {
		observerName = "Not specified"
	}

	return fmt.Sprintf(`MUSIC TEACHER OBSERVATION REPORT
%s

Teacher: %s
Observer: %s

%s

%s

%s

%s
`, p.DateStr, teacherName, observerName, divider, p.ReportText, divider, reportDisclaimer)
}

// TranscriptTextFallback is the plain-text rendering of the dual transcript.
func TranscriptTextFallback(teacherText, observerText, dateStr string) string {
	if observerText == "" {
		observerText = noObserverContent
	}

	return fmt.Sprintf(`MUSIC TEACHER OBSERVATION - FULL TRANSCRIPT
%s

TEACHER AUDIO:
%s

%s

%s
OBSERVER AUDIO/NOTES:
%s

%s

%s
%s
`, dateStr, divider, teacherText, divider, divider, observerText, divider, transcriptDisclaimer)
}

// SoloTextFallback is the plain-text rendering of a solo reflection session.
func SoloTextFallback(transcription string, chat []ChatMessage, dateStr string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SOLO TEACHING REFLECTION SESSION\n%s\n\n", dateStr)

	b.WriteString("REFLECTION CONVERSATION:\n")
	b.WriteString(divider + "\n\n")
	for _, msg := range chat {
		label := "Coach"
		if msg.Role == "user" {
			label = "You"
		}
		fmt.Fprintf(&b, "%s: %s\n\n", label, msg.Content)
	}

	b.WriteString(divider + "\n")
	b.WriteString("CLASSROOM AUDIO TRANSCRIPTION:\n")
	b.WriteString(divider + "\n\n")
	b.WriteString(transcription + "\n\n")
	b.WriteString(divider + "\n")
	b.WriteString(soloDisclaimer + "\n")
	return b.String()
}
