package pdf

import (
	"fmt"
	"strings"

	"observation-processor/pkg/transcript"
)

// maxTextChars caps input size before layout to keep render memory bounded.
const maxTextChars = 500000

// ValidationError reports a caller contract violation detected before any
// drawing occurs. It always propagates; it is never converted into a
// degradation tier.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Field, e.Reason)
}

// RenderError wraps a failure during page layout with the originating
// error's type for diagnostics.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("PDF %s generation error (%T): %v", e.Op, e.Err, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

func validateTextContent(text, field string) error {
	if text == "" {
		return &ValidationError{Field: field, Reason: "is empty"}
	}
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: field, Reason: "contains only whitespace"}
	}
	if len(text) > maxTextChars {
		return &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("is too long (%d chars), maximum is %d", len(text), maxTextChars),
		}
	}
	return nil
}

// ValidateReportInputs checks every report input before layout starts.
func ValidateReportInputs(reportText, teacherName, observerName, dateStr string) error {
	if err := validateTextContent(reportText, "report text"); err != nil {
		return err
	}
	if strings.TrimSpace(dateStr) == "" {
		return &ValidationError{Field: "date", Reason: "is empty"}
	}

	// Probe the encoding cycle on a prefix so a fully unrenderable report is
	// rejected here rather than mid-layout.
	probe := reportText
	if len(probe) > 1000 {
		probe = probe[:1000]
	}
	if transcript.SanitizeForRender(probe) == "" {
		return &ValidationError{Field: "report text", Reason: "sanitization produced empty result"}
	}

	return nil
}
