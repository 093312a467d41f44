package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pathedit/internal/model"
)

func TestHelp(t *testing.T) {
	help := Help()
	assert.Contains(t, help, "# pathedit "+model.Version)
	assert.NotContains(t, help, "{{VERSION}}")
	assert.Contains(t, help, "REG_EXPAND_SZ")
}
