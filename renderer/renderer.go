// Package renderer turns engine reports into markdown for terminal display.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	stockfolio "github.com/stockfolio/stockfolio"
)

//go:embed templates/*.md
var templatesDir embed.FS

// templates exposes the *.md files at the root of the embedded filesystem.
var templates, _ = fs.Sub(templatesDir, "templates")

var funcs = template.FuncMap{
	"stars": func(n int) string { return strings.Repeat("*", max(n, 0)) },
	"money": func(m stockfolio.Money) string { return "$" + m.Fixed() },
}

// RenderValue renders a value report to markdown.
func RenderValue(r *stockfolio.ValueReport) string {
	partials := map[string]string{
		"report_title": "report_title.md",
	}
	return renderTemplate("value", "value.md", partials, r)
}

// RenderComposition renders a composition report to markdown.
func RenderComposition(r *stockfolio.CompositionReport) string {
	partials := map[string]string{
		"report_title": "report_title.md",
	}
	return renderTemplate("composition", "composition.md", partials, r)
}

// RenderBand renders a performance band to markdown.
func RenderBand(b *stockfolio.Band) string {
	return renderTemplate("band", "band.md", nil, b)
}

// RenderCrossovers renders a list of crossovers for a symbol to markdown.
func RenderCrossovers(symbol string, crossovers []stockfolio.Crossover) string {
	data := struct {
		Symbol     string
		Crossovers []stockfolio.Crossover
	}{symbol, crossovers}
	return renderTemplate("crossovers", "crossovers.md", nil, data)
}

// RenderStrategy renders an investment plan to markdown.
func RenderStrategy(portfolioName string, s stockfolio.Strategy) string {
	data := struct {
		Name string
		stockfolio.Strategy
	}{portfolioName, s}
	return renderTemplate("strategy", "strategy.md", nil, data)
}

// renderTemplate is a generic utility to render a main template that depends
// on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
