package shopping

import (
	"html/template"
	"io"
)

var htmlTemplate = template.Must(template.New("shopping_list").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
{{- if .Generated}}
<p class="generated">{{.Generated}}</p>
{{- end}}
<table class="shopping-list">
<thead><tr><th>Ingredient</th><th>Unit</th><th>Amount</th></tr></thead>
<tbody>
{{- range .Entries}}
<tr><td class="name">{{.Name}}</td><td class="unit">{{.Unit}}</td><td class="amount">{{.FormatAmount}}</td></tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

// HTMLFormatter renders a printable HTML table.
type HTMLFormatter struct {
	opts Options
}

func (f *HTMLFormatter) ContentType() string { return "text/html; charset=utf-8" }
func (f *HTMLFormatter) Extension() string   { return "html" }

func (f *HTMLFormatter) Render(w io.Writer, entries []AggregatedEntry) error {
	if len(entries) == 0 {
		return ErrEmptyList
	}
	return htmlTemplate.Execute(w, struct {
		Title     string
		Generated string
		Entries   []AggregatedEntry
	}{
		Title:     f.opts.titleOr("Shopping list"),
		Generated: f.opts.generatedLine(),
		Entries:   entries,
	})
}
