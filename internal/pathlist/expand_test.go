package pathlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeEnv(vars map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestExpandFunc(t *testing.T) {
	env := fakeEnv(map[string]string{
		"SystemRoot": `C:\Windows`,
		"HOME":       `C:\Users\me`,
		"LOOP":       "%HOME%",
		"EMPTY":      "",
	})

	tests := []struct {
		in   string
		want string
	}{
		{`%SystemRoot%\System32`, `C:\Windows\System32`},
		{`C:\Tools`, `C:\Tools`},
		{`%UNSET%\bin`, `%UNSET%\bin`},
		{`50%`, `50%`},
		{`%%`, `%%`},
		{`a%%b`, `a%%b`},
		{`%%HOME%`, `%C:\Users\me`},
		{`%HOME%%SystemRoot%`, `C:\Users\meC:\Windows`},
		{`%HOME%x%`, `C:\Users\mex%`},
		{`%LOOP%`, `%HOME%`},
		{`%EMPTY%\x`, `\x`},
		{`ü%HOME%ü`, `üC:\Users\meü`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandFunc(tt.in, env), "ExpandFunc(%q)", tt.in)
	}
}

func TestExpandUsesProcessEnvironment(t *testing.T) {
	t.Setenv("PATHEDIT_TEST_DIR", `D:\tools`)
	assert.Equal(t, `D:\tools\bin`, Expand(`%PATHEDIT_TEST_DIR%\bin`))
}

func TestHasToken(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`%SystemRoot%\System32`, true},
		{`C:\Tools`, false},
		{`50%`, false},
		{`%%`, false},
		{`%`, false},
		{``, false},
		{`%UNSET_VARIABLE%`, true},
		{`x%%y%`, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasToken(tt.in), "HasToken(%q)", tt.in)
	}
}
