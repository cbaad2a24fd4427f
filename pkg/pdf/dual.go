package pdf

import (
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"observation-processor/pkg/transcript"
)

const noObserverContent = "No observer audio or notes provided."

// Dual-column geometry, in mm on an A4 portrait page.
const (
	columnWidth    = 92.0
	leftColumnX    = 9.0
	rightColumnX   = 109.0
	segmentLineH   = 4.0
	dualPageBottom = 280.0
)

// RenderDualTranscript lays the two aligned transcriptions out side by side
// with synchronized rows. Automatic page breaking is disabled; the renderer
// tracks its own cursor, breaks when a row would start past the bottom
// threshold, and restores the body font after each break. Each row advances
// to the taller of its two cells so the columns cannot drift.
func RenderDualTranscript(teacherText, observerText string) ([]byte, error) {
	if err := validateTextContent(teacherText, "teacher transcription"); err != nil {
		return nil, err
	}
	if err := validateTextContent(observerText, "observer transcription"); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) && strings.Contains(verr.Reason, "empty") {
			observerText = noObserverContent
		} else {
			return nil, err
		}
	}

	teacherText = transcript.SanitizeForRender(teacherText)
	observerText = transcript.SanitizeForRender(observerText)

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(12, 12, 12)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	pageW, _ := doc.GetPageSize()
	usable := pageW - 24

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(usable, 10, "Aligned Audio Transcription", "", 1, "C", false, 0, "")
	doc.Ln(3)

	doc.SetFont("Arial", "I", 10)
	doc.CellFormat(usable, 6, "Generated: "+time.Now().Format("January 2, 2006"), "", 1, "C", false, 0, "")
	doc.Ln(3)

	doc.SetFont("Arial", "I", 9)
	doc.SetTextColor(100, 100, 100)
	doc.MultiCell(usable, 5, transcriptDisclaimer, "", "C", false)
	doc.SetTextColor(0, 0, 0)
	doc.Ln(5)

	writeColumnHeaders(doc)

	teacherSegments, observerSegments := padSegments(
		transcript.ParseSegments(teacherText),
		transcript.ParseSegments(observerText),
	)

	doc.SetFont("Arial", "", 9)
	for i := range teacherSegments {
		if doc.GetY() > dualPageBottom {
			doc.AddPage()
			writeColumnHeaders(doc)
			doc.SetFont("Arial", "", 9)
		}

		rowTop := doc.GetY()
		writeSegment(doc, leftColumnX, rowTop, teacherSegments[i], "Teacher:", "Student:")
		teacherBottom := doc.GetY()
		writeSegment(doc, rightColumnX, rowTop, observerSegments[i], "Observer:")
		observerBottom := doc.GetY()

		doc.SetY(math.Max(teacherBottom, observerBottom))
		doc.Ln(2)
	}

	if doc.GetY() > dualPageBottom-10 {
		doc.AddPage()
	}
	doc.Ln(5)
	doc.SetFont("Arial", "I", 8)
	doc.SetTextColor(100, 100, 100)
	doc.SetX(12)
	doc.MultiCell(usable, 4, transcriptDisclaimer, "", "C", false)
	doc.SetTextColor(0, 0, 0)

	addPageFooters(doc)

	data, err := output(doc, "transcript")
	if err != nil {
		return nil, err
	}

	log.Printf("Dual transcript PDF rendered: %d rows, %d pages, %d bytes",
		len(teacherSegments), doc.PageCount(), len(data))
	return data, nil
}

func writeColumnHeaders(doc *gofpdf.Fpdf) {
	doc.SetFont("Arial", "B", 11)
	doc.SetX(leftColumnX)
	doc.CellFormat(100, 6, "Teacher Audio", "1", 0, "C", false, 0, "")
	doc.CellFormat(100, 6, "Observer Audio/Notes", "1", 1, "C", false, 0, "")
	doc.Ln(2)
}

// writeSegment draws one variable-height cell. Lines opening with one of the
// bold labels render bold, music markers render italic, everything else uses
// the body style.
func writeSegment(doc *gofpdf.Fpdf, x, y float64, segment string, boldLabels ...string) {
	doc.SetXY(x, y)
	if segment == "" {
		return
	}

	style := ""
	for _, label := range boldLabels {
		if strings.HasPrefix(segment, label) {
			style = "B"
			break
		}
	}
	if strings.HasPrefix(segment, "<Music>") {
		style = "I"
	}

	if style != "" {
		doc.SetFont("Arial", style, 9)
		doc.MultiCell(columnWidth, segmentLineH, segment, "", "L", false)
		doc.SetFont("Arial", "", 9)
		return
	}
	doc.MultiCell(columnWidth, segmentLineH, segment, "", "L", false)
}

// padSegments extends the shorter side with empty rows so both columns have
// the same row count.
func padSegments(teacherSegments, observerSegments []string) ([]string, []string) {
	for len(teacherSegments) < len(observerSegments) {
		teacherSegments = append(teacherSegments, "")
	}
	for len(observerSegments) < len(teacherSegments) {
		observerSegments = append(observerSegments, "")
	}
	return teacherSegments, observerSegments
}
