package transcript

import (
	"log"
	"regexp"
	"strings"
)

var (
	crlfPattern      = regexp.MustCompile(`\r\n`)
	multiNewline     = regexp.MustCompile(`\n{2,}`)
	multiSpace       = regexp.MustCompile(`[ \t]{2,}`)
	speakerLine      = regexp.MustCompile(`^([^:]+):\s*(.*)$`)
	looseLabelStarts = map[*regexp.Regexp]string{
		regexp.MustCompile(`(?im)^teacher\s*:`):   "Teacher:",
		regexp.MustCompile(`(?im)^student\s*:`):   "Student:",
		regexp.MustCompile(`(?im)^observer\s*:`):  "Observer:",
		regexp.MustCompile(`(?im)^<\s*music\s*>`): "<Music>",
	}
)

// StandardizeLabels fixes the casing and spacing of speaker labels that the
// generation service occasionally emits loosely ("teacher :", "<MUSIC>").
func StandardizeLabels(text string) string {
	if text == "" {
		return ""
	}
	for pattern, label := range looseLabelStarts {
		text = pattern.ReplaceAllString(text, label)
	}
	return text
}

// MergeConsecutiveTurns combines consecutive lines spoken under the same
// label into a single turn, so the dual-column layout gets one row per turn
// rather than one row per transcription line. Music markers are never
// merged; each marks a distinct moment in the lesson.
func MergeConsecutiveTurns(text string) string {
	log.Println("Merging consecutive speaker turns")

	text = crlfPattern.ReplaceAllString(text, "\n")
	text = multiNewline.ReplaceAllString(text, "\n")
	text = multiSpace.ReplaceAllString(text, " ")

	var result []string
	var currentSpeaker string
	var currentText string

	flush := func() {
		if currentSpeaker != "" {
			result = append(result, currentSpeaker+": "+currentText)
			currentSpeaker = ""
			currentText = ""
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "<Music>") {
			flush()
			result = append(result, line)
			continue
		}

		match := speakerLine.FindStringSubmatch(line)
		if len(match) < 3 {
			if currentSpeaker != "" {
				currentText += " " + line
			} else {
				result = append(result, line)
			}
			continue
		}

		speaker := strings.TrimSpace(match[1])
		content := strings.TrimSpace(match[2])

		if speaker == currentSpeaker {
			currentText += " " + content
			continue
		}

		flush()
		currentSpeaker = speaker
		currentText = content
	}

	flush()

	return strings.Join(result, "\n")
}
