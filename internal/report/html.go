package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templatesFS embed.FS

var funcs = template.FuncMap{
	"percent": FormatPercent,
	"score":   FormatScore,
	"date":    FormatDate,
	"clock":   FormatTime,
	"bar":     BarWidth,
}

var templates = template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))

type Toast struct {
	Variant     string
	Title       string
	Description string
}

// Page is everything the workflow page needs for one render.
type Page struct {
	AppName      string
	State        string
	FileName     string
	IsEvaluating bool
	CanEvaluate  bool
	Report       *View
	Toasts       []Toast
	Year         int
}

// RenderHTML writes the report fragment. A nil view writes nothing.
func RenderHTML(w io.Writer, v *View) error {
	if v == nil {
		return nil
	}
	if err := templates.ExecuteTemplate(w, "report", v); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func RenderPage(w io.Writer, p Page) error {
	if err := templates.ExecuteTemplate(w, "page", p); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
