package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/incomewatch/tax-estimator/internal/format"
	"github.com/incomewatch/tax-estimator/internal/service/report/types"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatCSV
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	var csvRows [][]string

	csvRows = append(csvRows, []string{"INCOME TAX ESTIMATE"})
	csvRows = append(csvRows, []string{fmt.Sprintf("Generated: %s at %s",
		data.Timestamps.Generated, data.Timestamps.GeneratedTime)})
	csvRows = append(csvRows, []string{""})

	csvRows = r.addSummary(csvRows, data.Summary)
	csvRows = r.addBracketBreakdown(csvRows, data.Brackets)

	if data.Options.IncludeComparisons {
		csvRows = r.addPurchases(csvRows, data.Purchases)
		csvRows = r.addOrganizations(csvRows, data.Organizations)
	}

	return r.convertRowsToCSV(csvRows)
}

func (r *Renderer) addSummary(csvRows [][]string, summary types.SummaryMetrics) [][]string {
	csvRows = append(csvRows, []string{"SUMMARY"})
	csvRows = append(csvRows, []string{""})
	csvRows = append(csvRows, []string{"Metric", "Value"})

	csvRows = append(csvRows, []string{"Annual Income", format.Money(summary.Income)})
	csvRows = append(csvRows, []string{"Federal Income Tax", format.Money(summary.FederalTax)})
	csvRows = append(csvRows, []string{"Contribution", format.Money(summary.Contribution)})
	csvRows = append(csvRows, []string{"Marginal Rate", format.Percent(summary.MarginalRate)})
	csvRows = append(csvRows, []string{"Effective Rate", format.Percent(summary.EffectiveRate)})
	csvRows = append(csvRows, []string{"Reaction", summary.Reaction})
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) addBracketBreakdown(csvRows [][]string, brackets []types.BracketDetail) [][]string {
	csvRows = append(csvRows, []string{"BRACKET BREAKDOWN"})
	csvRows = append(csvRows, []string{""})
	csvRows = append(csvRows, []string{"Rate", "From", "To", "Taxable Income", "Tax"})

	for _, b := range brackets {
		csvRows = append(csvRows, []string{
			format.Percent(b.Rate),
			format.Money(b.Floor),
			format.Cap(b.Cap),
			format.Money(b.Taxable),
			format.Money(b.Tax),
		})
	}
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) addPurchases(csvRows [][]string, purchases []types.PurchaseDetail) [][]string {
	csvRows = append(csvRows, []string{"WHAT YOUR CONTRIBUTION BUYS"})
	csvRows = append(csvRows, []string{""})
	csvRows = append(csvRows, []string{"Item", "Manufacturer", "Unit Cost", "Units"})

	for _, p := range purchases {
		csvRows = append(csvRows, []string{p.Name, p.Manufacturer, format.Money(p.Cost), format.Units(p.Units)})
	}
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) addOrganizations(csvRows [][]string, organizations []types.OrganizationDetail) [][]string {
	csvRows = append(csvRows, []string{"ORGANIZATIONS"})
	csvRows = append(csvRows, []string{""})
	csvRows = append(csvRows, []string{"Name", "Website"})

	for _, o := range organizations {
		csvRows = append(csvRows, []string{o.Name, o.Website})
	}

	return csvRows
}

func (r *Renderer) convertRowsToCSV(csvRows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for _, row := range csvRows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return buf.Bytes(), nil
}
