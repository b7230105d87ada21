// Package templates embeds the dashboard pages and the HTMX fragments.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses every page and fragment; names are the file names.
func Load() *template.Template {
	return template.Must(template.New("").ParseFS(files, "*.html"))
}
