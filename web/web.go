// Package web embeds the HTML templates served by the page handlers.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every embedded page template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"dueClass": dueClass,
	}).ParseFS(templateFS, "templates/*.html")
}

// dueClass buckets a days_until_due value for row styling.
func dueClass(days int) string {
	switch {
	case days < 0:
		return "overdue"
	case days <= 7:
		return "due-soon"
	default:
		return "ok"
	}
}
