package html

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/incomewatch/tax-estimator/internal/format"
	"github.com/incomewatch/tax-estimator/internal/service/report/types"
)

var funcs = template.FuncMap{
	"money":   format.Money,
	"percent": format.Percent,
	"units":   format.Units,
	"cap":     format.Cap,
}

var reportTemplate = template.Must(template.New("report").Funcs(funcs).Parse(htmlReportTemplate))

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatHTML
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute HTML template: %w", err)
	}
	return buf.Bytes(), nil
}

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Income Tax Estimate</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 0; padding: 20px; background: #f5f5f5; color: #333; }
        .container { max-width: 960px; margin: 0 auto; background: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        h1 { color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px; }
        h2 { color: #34495e; margin-top: 30px; }
        .summary-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 20px; margin: 30px 0; }
        .summary-card { background: #3498db; color: white; padding: 20px; border-radius: 8px; text-align: center; }
        .summary-card .value { font-size: 1.6em; font-weight: bold; }
        .reaction { font-size: 1.3em; margin: 20px 0; }
        table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        th, td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background: #34495e; color: white; }
        td.number { text-align: right; font-variant-numeric: tabular-nums; }
        .footer { margin-top: 40px; color: #7f8c8d; font-size: 0.9em; }
    </style>
</head>
<body>
<div class="container">
    <h1>Income Tax Estimate</h1>
    <p>Generated on {{.Timestamps.Generated}} at {{.Timestamps.GeneratedTime}}</p>

    <div class="summary-grid">
        <div class="summary-card"><div>Annual Income</div><div class="value">{{money .Summary.Income}}</div></div>
        <div class="summary-card"><div>Federal Income Tax</div><div class="value">{{money .Summary.FederalTax}}</div></div>
        <div class="summary-card"><div>Marginal Rate</div><div class="value">{{percent .Summary.MarginalRate}}</div></div>
        <div class="summary-card"><div>Effective Rate</div><div class="value">{{percent .Summary.EffectiveRate}}</div></div>
    </div>
    <p class="reaction">{{.Summary.Reaction}}</p>

    <h2>Bracket Breakdown</h2>
    <table>
        <tr><th>Rate</th><th>From</th><th>To</th><th>Taxable Income</th><th>Tax</th></tr>
        {{- range .Brackets}}
        <tr><td>{{percent .Rate}}</td><td class="number">{{money .Floor}}</td><td class="number">{{cap .Cap}}</td><td class="number">{{money .Taxable}}</td><td class="number">{{money .Tax}}</td></tr>
        {{- end}}
    </table>
{{- if .Options.IncludeComparisons}}

    <h2>What Your Contribution Buys</h2>
    <p>Contribution: {{money .Summary.Contribution}}</p>
    <table>
        <tr><th>Item</th><th>Manufacturer</th><th>Unit Cost</th><th>Units</th></tr>
        {{- range .Purchases}}
        <tr><td>{{.Name}}</td><td>{{.Manufacturer}}</td><td class="number">{{money .Cost}}</td><td class="number">{{units .Units}}</td></tr>
        {{- end}}
    </table>

    <h2>Organizations</h2>
    <ul>
        {{- range .Organizations}}
        <li><a href="{{.Website}}" target="_blank" rel="noopener noreferrer">{{.Name}}</a></li>
        {{- end}}
    </ul>
{{- end}}

    <div class="footer">Figures use the configured bracket schedule and are estimates only.</div>
</div>
</body>
</html>
`
