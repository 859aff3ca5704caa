package source

import (
	"strconv"
	"strings"
	"unicode"
)

// stripComment removes a trailing `# ... ` comment, honouring quotes so a
// '#' inside a string literal is not treated as a comment marker.
func stripComment(line string) string {
	inQuote := false
	for i, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == '#' && !inQuote:
			return line[:i]
		}
	}
	return line
}

// fields splits line on whitespace, keeping double-quoted substrings
// (including their internal spaces) as a single token.
func fields(line string) []string {
	var toks []string
	var cur strings.Builder
	inQuote := false
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case unicode.IsSpace(r) && !inQuote:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

// isToken reports whether r can be part of a token (a letter, digit or
// underscore); substituteToken uses it to test whole-token boundaries.
func isToken(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// substituteToken textually replaces every whole-token occurrence of name
// in line with value.
func substituteToken(line, name, value string) string {
	var out strings.Builder
	runes := []rune(line)
	n := len([]rune(name))
	i := 0
	for i < len(runes) {
		if matchesAt(runes, i, name) &&
			(i == 0 || !isToken(runes[i-1])) &&
			(i+n == len(runes) || !isToken(runes[i+n])) {
			out.WriteString(value)
			i += n
			continue
		}
		out.WriteRune(runes[i])
		i++
	}
	return out.String()
}

func matchesAt(runes []rune, i int, name string) bool {
	nameRunes := []rune(name)
	if i+len(nameRunes) > len(runes) {
		return false
	}
	for j, r := range nameRunes {
		if runes[i+j] != r {
			return false
		}
	}
	return true
}

// parseImmediate parses a decimal or `0x`-hex literal, or resolves tok as
// a label in labels. Returns ok=false if tok is none of these.
func parseImmediate(tok string, labels map[string]uint32) (uint32, bool) {
	if v, ok := labels[tok]; ok {
		return v, true
	}
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		v, err := strconv.ParseUint(tok[2:], 16, 32)
		if err != nil {
			return 0, false
		}
		return uint32(v), true
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}
