package templates

import (
	"bytes"
	"embed"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

// Known template kinds.
const (
	Reminder     = "reminder"
	ExpenseAlert = "expense_alert"
)

var tmpl = htmpl.Must(htmpl.ParseFS(FS, "*.tmpl"))

// RenderHTML renders the HTML body for a notification kind. The text body is
// passed through so the template can fall back to it verbatim.
func RenderHTML(kind, subject, text string) (string, error) {
	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, kind+".tmpl", map[string]string{
		"Subject": subject,
		"Text":    text,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Known reports whether kind maps to an embedded template.
func Known(kind string) bool {
	return kind == Reminder || kind == ExpenseAlert
}
