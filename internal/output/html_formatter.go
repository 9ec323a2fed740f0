package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/drivefit/internal/calculation"
)

// HTMLFormatter renders a standalone HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"dollars": calculation.FormatDollars,
	"pct":     FormatPercentage,
	"inc":     func(i int) int { return i + 1 },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
