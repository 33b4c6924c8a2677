// Package renderer turns portfolio data into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// RenderPortfolio renders the Portfolio struct to a markdown string.
func RenderPortfolio(p *Portfolio) string {
	partials := map[string]string{
		"portfolio_title":     "portfolio_title.md",
		"portfolio_holdings":  "portfolio_holdings.md",
		"portfolio_valuation": "portfolio_valuation.md",
	}
	return renderTemplate("portfolio", "portfolio.md", partials, p)
}

// RenderTransactions renders the Transactions struct to a markdown string.
func RenderTransactions(t *Transactions) string {
	partials := map[string]string{
		"transactions_table": "transactions_table.md",
	}
	return renderTemplate("transactions", "transactions.md", partials, t)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
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
