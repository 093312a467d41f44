package pathlist

import (
	"os"
	"strings"
)

// LookupFunc resolves an environment variable name.
type LookupFunc func(name string) (string, bool)

// Expand resolves %NAME% tokens against the process environment.
func Expand(text string) string {
	return ExpandFunc(text, os.LookupEnv)
}

// ExpandFunc replaces each well-formed %NAME% token with lookup(NAME).
// Unresolved tokens, a lone '%' and "%%" are kept verbatim. Substituted
// values are not scanned again.
func ExpandFunc(text string, lookup LookupFunc) string {
	if !strings.Contains(text, "%") {
		return text
	}

	var out strings.Builder
	out.Grow(len(text))
	for i := 0; i < len(text); {
		name, end, ok := tokenAt(text, i)
		if !ok {
			out.WriteByte(text[i])
			i++
			continue
		}
		if value, found := lookup(name); found {
			out.WriteString(value)
		} else {
			out.WriteString(text[i:end])
		}
		i = end
	}
	return out.String()
}

// HasToken reports whether text contains at least one well-formed %NAME%
// token, whether or not NAME is set.
func HasToken(text string) bool {
	for i := 0; i < len(text); i++ {
		if _, _, ok := tokenAt(text, i); ok {
			return true
		}
	}
	return false
}

// tokenAt matches a token starting at text[i]. It returns the name and the
// index just past the closing '%'.
func tokenAt(text string, i int) (name string, end int, ok bool) {
	if text[i] != '%' {
		return "", 0, false
	}
	j := strings.IndexByte(text[i+1:], '%')
	if j <= 0 {
		// No closing '%', or "%%" with an empty name.
		return "", 0, false
	}
	return text[i+1 : i+1+j], i + j + 2, true
}
