// Package rubric extracts evaluation-criteria text from observer-uploaded
// PDF files so it can be folded into the report prompt.
package rubric

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText pulls the plain text out of a PDF rubric. The underlying
// reader panics on some malformed files, so failures of any shape come back
// as an error.
func ExtractText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rubric PDF parsing failed: %v", r)
		}
	}()

	if len(data) == 0 {
		return "", fmt.Errorf("rubric file is empty")
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open rubric PDF: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract rubric text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read rubric text: %w", err)
	}

	result := strings.TrimSpace(buf.String())
	if result == "" {
		return "", fmt.Errorf("rubric PDF contains no extractable text")
	}

	log.Printf("Extracted %d chars of rubric text from %d byte PDF", len(result), len(data))
	return result, nil
}

// FromUpload picks the criteria source: an uploaded PDF wins over pasted
// text; extraction failure falls back to the pasted text.
func FromUpload(pdfData []byte, pastedText string) string {
	if len(pdfData) == 0 {
		return strings.TrimSpace(pastedText)
	}
	text, err := ExtractText(pdfData)
	if err != nil {
		log.Printf("Rubric extraction failed, using pasted criteria: %v", err)
		return strings.TrimSpace(pastedText)
	}
	return text
}
