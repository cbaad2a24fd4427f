package transcript

import "strings"

// markerPrefixes open a new turn when they start a line. Everything else is
// continuation text for the currently open turn.
var markerPrefixes = []string{"Teacher:", "Student:", "Observer:", "<Music>"}

// NoContentSentinel is emitted when a transcript has nothing renderable, so
// downstream renderers always have at least one segment to place.
const NoContentSentinel = "No content available."

// HasMarker reports whether the line begins a labeled turn.
func HasMarker(line string) bool {
	for _, prefix := range markerPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// ParseSegments splits a cleaned transcript into labeled turns. A marker
// line starts a segment and absorbs following unlabeled lines, joined by
// single spaces. Blank lines are dropped without closing the open segment.
// Unlabeled content before the first marker still forms a leading segment.
func ParseSegments(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{NoContentSentinel}
	}

	var segments []string
	var current []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if HasMarker(line) {
			if len(current) > 0 {
				segments = append(segments, strings.Join(current, " "))
			}
			current = []string{line}
			continue
		}
		current = append(current, line)
	}

	if len(current) > 0 {
		segments = append(segments, strings.Join(current, " "))
	}

	if len(segments) == 0 {
		return []string{NoContentSentinel}
	}
	return segments
}
