// Package report renders the self-assessment result into a Markdown document
// artifact. It consumes plain score and finding data; it knows nothing about
// how answers were captured.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/transparenta/autoeval/internal/catalog"
	"github.com/transparenta/autoeval/internal/scoring"
)

// Data is the full input contract of the report builder.
type Data struct {
	Organization string
	Evaluator    string
	Date         time.Time
	Scores       scoring.ScoreSet
	Findings     []scoring.CategoryFindings
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"pct": formatScore,
}).Parse(`# ACTIVE TRANSPARENCY SELF-ASSESSMENT REPORT

**Organization:** {{ .Organization }}
**Date:** {{ .Date.Format "02-01-2006" }}
**Evaluator:** {{ .Evaluator }}
**Observed global compliance:** {{ printf "%.1f" .Scores.Global }} %

## Score by category

| Category | % |
| --- | --- |
{{ range .CategoryRows }}| {{ .Name }} | {{ pct .Score }} |
{{ end }}
## Score by item

| Item | % |
| --- | --- |
{{ range .ItemRows }}| {{ .Name }} | {{ pct .Score }} |
{{ end }}{{ if .Findings }}
## Detected non-conformities
{{ range .Findings }}
### {{ .Category }}
{{ range .Items }}
**{{ .Item }}**
{{ range .Notes }}- {{ . }}
{{ end }}{{ end }}{{ end }}{{ end }}`))

type row struct {
	Name  string
	Score *float64
}

type templateData struct {
	Data
	CategoryRows []row
	ItemRows     []row
}

// Builder renders and exports assessment reports. Table rows follow catalog
// order, never alphabetical.
type Builder struct {
	catalog *catalog.Catalog
}

// NewBuilder creates a Builder over the loaded catalog.
func NewBuilder(cat *catalog.Catalog) *Builder {
	return &Builder{catalog: cat}
}

// Render produces the report document as bytes.
func (b *Builder) Render(data Data) ([]byte, error) {
	td := templateData{Data: data}
	for _, category := range b.catalog.CategoryOrder() {
		td.CategoryRows = append(td.CategoryRows, row{category, data.Scores.Categories[category]})
	}
	for _, it := range b.catalog.Items() {
		td.ItemRows = append(td.ItemRows, row{it.Key, data.Scores.Items[it.Key]})
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, td); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return buf.Bytes(), nil
}

// Export renders the report and writes it under dir using the standard
// filename. It returns the full path of the written artifact.
func (b *Builder) Export(dir string, data Data) (string, error) {
	doc, err := b.Render(data)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, Filename(data.Organization, data.Date))
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

var unsafeRuns = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Filename builds the artifact name: Report_<org-sanitized>_<YYYYMMDD>.md.
// Runs of non-alphanumeric characters in the organization name collapse to a
// single underscore.
func Filename(organization string, date time.Time) string {
	org := strings.Trim(unsafeRuns.ReplaceAllString(organization, "_"), "_")
	if org == "" {
		org = "organization"
	}
	return fmt.Sprintf("Report_%s_%s.md", org, date.Format("20060102"))
}

func formatScore(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}
