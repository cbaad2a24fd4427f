package pdf

import (
	"bytes"
	"fmt"
	"log"

	"github.com/jung-kurt/gofpdf"

	"observation-processor/pkg/report"
	"observation-processor/pkg/transcript"
)

const (
	reportDisclaimer = "Disclaimer: This observation report was generated by AI and may contain errors. " +
		"Please review all content for accuracy and use professional judgment."
	transcriptDisclaimer = "Note: This transcription was created by AI. " +
		"Please verify all important information for accuracy."
	noTeacherAudioNote = "Note: This report is based on observer notes/audio " +
		"without teacher classroom audio evidence."
)

// ReportParams are the inputs to the single-column observation report.
type ReportParams struct {
	ReportText      string
	TeacherName     string
	ObserverName    string
	DateStr         string
	HasTeacherAudio bool
}

// RenderReport lays the classified report text out as a single-column PDF:
// centered title, italic date line, optional name lines, the body with
// header/bullet styling, and the disclaimer appended after the content.
// Inputs are validated before any drawing occurs.
func RenderReport(p ReportParams) ([]byte, error) {
	if err := ValidateReportInputs(p.ReportText, p.TeacherName, p.ObserverName, p.DateStr); err != nil {
		return nil, err
	}

	reportText := transcript.SanitizeForRender(p.ReportText)
	teacherName := transcript.SanitizeForRender(p.TeacherName)
	observerName := transcript.SanitizeForRender(p.ObserverName)
	dateStr := transcript.SanitizeForRender(p.DateStr)

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(12, 12, 12)
	doc.SetAutoPageBreak(true, 12)
	doc.AddPage()

	pageW, _ := doc.GetPageSize()
	usable := pageW - 24

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(usable, 10, "Music Teacher Observation Report", "", 1, "C", false, 0, "")
	doc.Ln(3)

	doc.SetFont("Arial", "I", 10)
	doc.CellFormat(usable, 6, dateStr, "", 1, "C", false, 0, "")
	doc.Ln(5)

	if !p.HasTeacherAudio {
		doc.SetFont("Arial", "I", 9)
		doc.SetTextColor(100, 100, 100)
		doc.MultiCell(usable, 5, noTeacherAudioNote, "", "L", false)
		doc.SetTextColor(0, 0, 0)
		doc.Ln(3)
	}

	doc.SetFont("Arial", "B", 11)
	if teacherName != "" {
		doc.CellFormat(usable, 6, "Teacher: "+teacherName, "", 1, "L", false, 0, "")
	}
	if observerName != "" {
		doc.CellFormat(usable, 6, "Observer: "+observerName, "", 1, "L", false, 0, "")
	}
	doc.Ln(5)

	doc.SetFont("Arial", "", 10)
	const lineHeight = 5

	for _, line := range report.ClassifyLines(reportText) {
		switch line.Kind {
		case report.Blank:
			doc.Ln(3)
		case report.SectionHeader:
			doc.SetFont("Arial", "B", 11)
			doc.MultiCell(usable, lineHeight, line.Text, "", "L", false)
			doc.SetFont("Arial", "", 10)
			doc.Ln(2)
		case report.SubHeader:
			doc.SetFont("Arial", "B", 10)
			doc.MultiCell(usable, lineHeight, line.Text, "", "L", false)
			doc.SetFont("Arial", "", 10)
			doc.Ln(1)
		default:
			doc.MultiCell(usable, lineHeight, line.Text, "", "L", false)
		}
	}

	doc.Ln(8)
	doc.SetFont("Arial", "I", 9)
	doc.SetTextColor(100, 100, 100)
	doc.MultiCell(usable, 5, reportDisclaimer, "", "C", false)
	doc.SetTextColor(0, 0, 0)

	addPageFooters(doc)

	data, err := output(doc, "report")
	if err != nil {
		return nil, err
	}

	log.Printf("Report PDF rendered: %d pages, %d bytes", doc.PageCount(), len(data))
	return data, nil
}

// addPageFooters stamps "Page i of n" at the bottom of every page.
func addPageFooters(doc *gofpdf.Fpdf) {
	pageCount := doc.PageCount()
	for i := 1; i <= pageCount; i++ {
		doc.SetPage(i)
		doc.SetY(-15)
		doc.SetFont("Arial", "I", 8)
		doc.SetTextColor(100, 100, 100)
		doc.CellFormat(0, 10, fmt.Sprintf("Page %d of %d", i, pageCount), "", 0, "C", false, 0, "")
		doc.SetTextColor(0, 0, 0)
	}
}

func output(doc *gofpdf.Fpdf, op string) ([]byte, error) {
	if doc.Err() {
		return nil, &RenderError{Op: op, Err: doc.Error()}
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, &RenderError{Op: op, Err: err}
	}
	return buf.Bytes(), nil
}
