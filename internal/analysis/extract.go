package analysis

import (
	"strings"

	"github.com/rotisserie/eris"
)

// ExtractJSON pulls a JSON object out of noisy model output. It
// tolerates markdown code fences, surrounding prose, // and /* */
// comments, and trailing commas. The returned string is the cleaned
// candidate; parse failures are the caller's to surface.
func ExtractJSON(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", eris.New("analysis: empty response text")
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", eris.New("analysis: no JSON structure found in response")
	}

	return sanitizeJSON(text[start : end+1]), nil
}

// sanitizeJSON removes comments and trailing commas that appear outside
// string literals. Models emit both despite being told not to.
func sanitizeJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false
	i := 0
	for i < len(s) {
		c := s[i]

		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			i++
			continue
		}

		switch {
		case c == '"':
			inString = true
			b.WriteByte(c)
			i++
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i < len(s) && s[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i += 2
		case c == ',':
			// Drop the comma if the next significant byte closes a
			// container.
			j := i + 1
			for j < len(s) && isJSONSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				i++
				continue
			}
			b.WriteByte(c)
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String()
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
