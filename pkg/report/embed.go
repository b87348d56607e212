package report

import "embed"

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// EmbeddedTemplates exposes the built-in report templates so callers can
// reuse or extend them.
func EmbeddedTemplates() embed.FS {
	return embeddedTemplates
}
