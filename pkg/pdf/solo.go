package pdf

import (
	"log"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"observation-processor/pkg/transcript"
)

const soloDisclaimer = "Disclaimer: This reflection session and transcription were generated by AI " +
	"and may contain errors. Please review all content for accuracy and use professional judgment."

// ChatMessage is one turn of a solo reflection conversation.
type ChatMessage struct {
	Role    string // "user" or "coach"
	Content string
}

// RenderSoloSession exports a solo teaching reflection: the coaching
// conversation first, then the classroom transcription, with the standard
// disclaimer appended.
func RenderSoloSession(transcription string, chat []ChatMessage, dateStr string) ([]byte, error) {
	if len(chat) == 0 {
		if err := validateTextContent(transcription, "transcription"); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(dateStr) == "" {
		return nil, &ValidationError{Field: "date", Reason: "is empty"}
	}

	transcription = transcript.SanitizeForRender(transcription)
	dateStr = transcript.SanitizeForRender(dateStr)

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(12, 12, 12)
	doc.SetAutoPageBreak(true, 12)
	doc.AddPage()

	pageW, _ := doc.GetPageSize()
	usable := pageW - 24

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(usable, 10, "Solo Teaching Reflection Session", "", 1, "C", false, 0, "")
	doc.Ln(3)

	doc.SetFont("Arial", "I", 10)
	doc.CellFormat(usable, 6, dateStr, "", 1, "C", false, 0, "")
	doc.Ln(5)

	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(usable, 6, "REFLECTION CONVERSATION:", "", 1, "L", false, 0, "")
	doc.Ln(3)

	const lineHeight = 5
	for _, msg := range chat {
		label := "Coach: "
		if msg.Role == "user" {
			label = "You: "
		}

		doc.SetFont("Arial", "B", 10)
		doc.CellFormat(usable, lineHeight, label, "", 1, "L", false, 0, "")

		doc.SetFont("Arial", "", 10)
		doc.MultiCell(usable, lineHeight, transcript.SanitizeForRender(msg.Content), "", "L", false)
		doc.Ln(3)
	}

	doc.Ln(5)
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(usable, 6, "CLASSROOM AUDIO TRANSCRIPTION:", "", 1, "L", false, 0, "")
	doc.Ln(3)

	doc.SetFont("Arial", "", 9)
	if transcription == "" {
		transcription = transcript.NoContentSentinel
	}
	doc.MultiCell(usable, 4, transcription, "", "L", false)

	doc.Ln(8)
	doc.SetFont("Arial", "I", 9)
	doc.SetTextColor(100, 100, 100)
	doc.MultiCell(usable, 5, soloDisclaimer, "", "C", false)
	doc.SetTextColor(0, 0, 0)

	addPageFooters(doc)

	data, err := output(doc, "solo session")
	if err != nil {
		return nil, err
	}

	log.Printf("Solo session PDF rendered: %d messages, %d bytes", len(chat), len(data))
	return data, nil
}
