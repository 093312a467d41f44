package pathlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"nil", nil, ""},
		{"single byte", []byte{'A'}, ""},
		{"only nul", []byte{0, 0}, ""},
		{"ascii with nul", []byte{'C', 0, ':', 0, '\\', 0, 0, 0}, `C:\`},
		{"no terminator", []byte{'A', 0, 'B', 0}, "AB"},
		{"extra nul padding", []byte{'A', 0, 0, 0, 0, 0}, "A"},
		{"odd trailing byte", []byte{'A', 0, 'B'}, "A"},
		{"non ascii", []byte{0xe9, 0x00, 0, 0}, "é"},
		{"surrogate pair", []byte{0x3d, 0xd8, 0x00, 0xde, 0, 0}, "😀"},
		{"lone surrogate", []byte{'A', 0, 0x00, 0xd8, 'B', 0, 0, 0}, "A\uFFFDB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.raw))
		})
	}
}

func TestEncode(t *testing.T) {
	assert.Equal(t, []byte{0, 0}, Encode(""))
	assert.Equal(t,
		[]byte{'C', 0, ':', 0, '\\', 0, 'T', 0, 'o', 0, 'o', 0, 'l', 0, 's', 0, 0, 0},
		Encode(`C:\Tools`))
	assert.Equal(t, []byte{0x3d, 0xd8, 0x00, 0xde, 0, 0}, Encode("😀"))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	buffers := [][]byte{
		Encode(`%SystemRoot%\system32;C:\Program Files\Git\cmd`),
		append(Encode(`C:\Tools`), 0, 0, 0, 0),
		{'x', 0, 0, 0},
		{0, 0},
	}
	for _, b := range buffers {
		text := Decode(b)
		assert.Equal(t, text, Decode(Encode(text)))
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{";;;", []string{}},
		{`C:\A`, []string{`C:\A`}},
		{` C:\A ;;C:\B;  ;C:\A;`, []string{`C:\A`, `C:\B`, `C:\A`}},
		{"\tC:\\Program Files\\x \t", []string{`C:\Program Files\x`}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Split(tt.in), "Split(%q)", tt.in)
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "", Join(nil))
	assert.Equal(t, `C:\A`, Join([]string{`C:\A`}))
	assert.Equal(t, `C:\A;%X%\bin`, Join([]string{`C:\A`, `%X%\bin`}))
}

func TestSplitJoinRoundTrip(t *testing.T) {
	lists := [][]string{
		{},
		{`C:\Windows`},
		{`C:\A`, `C:\B`, `C:\A`},
		{`%USERPROFILE%\bin`, `C:\Program Files\Go\bin`, `\\server\share\tools`},
	}
	for _, xs := range lists {
		assert.Equal(t, xs, Split(Join(xs)))
	}
}
