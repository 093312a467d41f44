package pathlist

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Separator joins entries inside a Windows PATH value.
const Separator = ";"

// utf16le decodes registry string data. The x/text decoder substitutes
// U+FFFD for unpaired surrogates instead of failing.
var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Decode interprets raw registry data as NUL-terminated UTF-16LE text.
// Trailing NUL units are stripped; fewer than two bytes decode to "".
func Decode(raw []byte) string {
	if len(raw) < 2 {
		return ""
	}
	// An odd trailing byte cannot form a code unit.
	raw = raw[:len(raw)&^1]
	for len(raw) >= 2 && raw[len(raw)-2] == 0 && raw[len(raw)-1] == 0 {
		raw = raw[:len(raw)-2]
	}
	if len(raw) == 0 {
		return ""
	}

	text, _, err := transform.Bytes(utf16le.NewDecoder(), raw)
	if err != nil {
		return ""
	}
	return string(text)
}

// Encode converts text to UTF-16LE code units followed by one NUL unit.
func Encode(text string) []byte {
	units := utf16.Encode([]rune(text))
	buf := make([]byte, (len(units)+1)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[i*2:], u)
	}
	return buf
}

// Split breaks a PATH value into entries, trimming whitespace and dropping
// empty pieces. Order and duplicates are preserved.
func Split(text string) []string {
	entries := []string{}
	for _, part := range strings.Split(text, Separator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		entries = append(entries, part)
	}
	return entries
}

// Join is the inverse of Split for trimmed, separator-free entries.
func Join(entries []string) string {
	return strings.Join(entries, Separator)
}
