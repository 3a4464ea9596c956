package detail

import "strings"

// NoSummary is shown when a recipe has no usable instruction text.
const NoSummary = "No description available."

// ParseInstructions splits instruction text into trimmed, non-blank steps.
// Steps are separated by CRLF; bare LF is accepted too.
func ParseInstructions(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	steps := []string{}
	for _, s := range strings.Split(text, "\n") {
		if s = strings.TrimSpace(s); s != "" {
			steps = append(steps, s)
		}
	}
	return steps
}

// Summary is the first step of text, or NoSummary.
func Summary(text string) string {
	steps := ParseInstructions(text)
	if len(steps) == 0 {
		return NoSummary
	}
	return steps[0]
}
