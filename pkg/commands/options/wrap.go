package options

import "strings"

// Wrap80 wraps text at 80 columns for help output.
func Wrap80(text string) string {
	return Wrap(text, 80)
}

// Wrap breaks text on spaces so no line exceeds width, unless a single word
// is longer.
func Wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	line := 0
	for i, w := range words {
		if i > 0 {
			if line+1+len(w) > width {
				b.WriteByte('\n')
				line = 0
			} else {
				b.WriteByte(' ')
				line++
			}
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}
