package pathlist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pathedit/internal/model"
)

func TestSelectEncoding(t *testing.T) {
	tests := []struct {
		name       string
		serialized string
		previous   model.ValueEncoding
		want       model.ValueEncoding
	}{
		{"token forces expandable", `%SystemRoot%\System32;C:\Tools`, model.EncodingPlain, model.EncodingExpandable},
		{"plain stays plain", `C:\Tools`, model.EncodingPlain, model.EncodingPlain},
		{"expandable preserved without token", `C:\Tools`, model.EncodingExpandable, model.EncodingExpandable},
		{"unknown type becomes plain", `C:\Tools`, model.ValueEncoding(3), model.EncodingPlain},
		{"unknown type with token", `%X%`, model.ValueEncoding(0), model.EncodingExpandable},
		{"lone percent is not a token", `C:\50%`, model.EncodingPlain, model.EncodingPlain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectEncoding(tt.serialized, tt.previous))
		})
	}
}
