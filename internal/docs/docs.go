// Package docs holds the operator help text shared by the terminal and web
// views.
package docs

import (
	_ "embed"
	"strings"

	"pathedit/internal/model"
)

//go:embed help.md
var helpMD string

// Help returns the help markdown with the version filled in.
func Help() string {
	return strings.ReplaceAll(helpMD, "{{VERSION}}", model.Version)
}
