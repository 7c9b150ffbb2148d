package xlsx

import (
	"bytes"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/incomewatch/tax-estimator/internal/format"
	"github.com/incomewatch/tax-estimator/internal/service/report/types"
)

const (
	SheetSummary       = "Summary"
	SheetBrackets      = "Brackets"
	SheetPurchases     = "Purchases"
	SheetOrganizations = "Organizations"

	defaultSheet = "Sheet1"

	// built-in excel number formats
	numFmtMoney   = 4  // #,##0.00
	numFmtPercent = 10 // 0.00%
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatXLSX
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(defaultSheet, SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := r.writeSummary(f, styles, data); err != nil {
		return nil, err
	}
	if err := r.writeBrackets(f, styles, data.Brackets); err != nil {
		return nil, err
	}
	if data.Options.IncludeComparisons {
		if err := r.writePurchases(f, styles, data.Purchases); err != nil {
			return nil, err
		}
		if err := r.writeOrganizations(f, styles, data.Organizations); err != nil {
			return nil, err
		}
	}

	summaryIndex, err := f.GetSheetIndex(SheetSummary)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(summaryIndex)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type styles struct {
	header  int
	money   int
	percent int
}

func newStyles(f *excelize.File) (styles, error) {
	var (
		s   styles
		err error
	)
	if s.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, fmt.Errorf("failed to create header style: %w", err)
	}
	if s.money, err = f.NewStyle(&excelize.Style{NumFmt: numFmtMoney}); err != nil {
		return s, fmt.Errorf("failed to create money style: %w", err)
	}
	if s.percent, err = f.NewStyle(&excelize.Style{NumFmt: numFmtPercent}); err != nil {
		return s, fmt.Errorf("failed to create percent style: %w", err)
	}
	return s, nil
}

func cellName(col, row int) string {
	name, _ := excelize.ColumnNumberToName(col + 1)
	return fmt.Sprintf("%s%d", name, row)
}

// writeRow writes values starting at column A of row and applies the per-column
// style, where a style of 0 means none.
func writeRow(f *excelize.File, sheet string, row int, values []any, columnStyles ...int) error {
	for col, value := range values {
		ref := cellName(col, row)
		if err := f.SetCellValue(sheet, ref, value); err != nil {
			return fmt.Errorf("failed to set %s!%s: %w", sheet, ref, err)
		}
		if col < len(columnStyles) && columnStyles[col] != 0 {
			if err := f.SetCellStyle(sheet, ref, ref, columnStyles[col]); err != nil {
				return fmt.Errorf("failed to style %s!%s: %w", sheet, ref, err)
			}
		}
	}
	return nil
}

func writeHeader(f *excelize.File, s styles, sheet string, headers ...string) error {
	values := make([]any, len(headers))
	columnStyles := make([]int, len(headers))
	for i, h := range headers {
		values[i] = h
		columnStyles[i] = s.header
	}
	if err := writeRow(f, sheet, 1, values, columnStyles...); err != nil {
		return err
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetColWidth(sheet, "A", last, 22)
}

func newSheet(f *excelize.File, sheet string) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	return nil
}

func (r *Renderer) writeSummary(f *excelize.File, s styles, data *types.ReportData) error {
	if err := writeHeader(f, s, SheetSummary, "Metric", "Value"); err != nil {
		return err
	}

	rows := []struct {
		label string
		value any
		style int
	}{
		{"Generated", fmt.Sprintf("%s %s", data.Timestamps.Generated, data.Timestamps.GeneratedTime), 0},
		{"Annual Income", data.Summary.Income, s.money},
		{"Federal Income Tax", data.Summary.FederalTax, s.money},
		{"Contribution", data.Summary.Contribution, s.money},
		{"Marginal Rate", data.Summary.MarginalRate, s.percent},
		{"Effective Rate", data.Summary.EffectiveRate, s.percent},
		{"Reaction", data.Summary.Reaction, 0},
	}
	for i, row := range rows {
		if err := writeRow(f, SheetSummary, i+2, []any{row.label, row.value}, 0, row.style); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) writeBrackets(f *excelize.File, s styles, brackets []types.BracketDetail) error {
	if err := newSheet(f, SheetBrackets); err != nil {
		return err
	}
	if err := writeHeader(f, s, SheetBrackets, "Rate", "From", "To", "Taxable Income", "Tax"); err != nil {
		return err
	}
	for i, b := range brackets {
		var to any = b.Cap
		toStyle := s.money
		if math.IsInf(b.Cap, 1) {
			to = format.Cap(b.Cap)
			toStyle = 0
		}
		values := []any{b.Rate, b.Floor, to, b.Taxable, b.Tax}
		if err := writeRow(f, SheetBrackets, i+2, values, s.percent, s.money, toStyle, s.money, s.money); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) writePurchases(f *excelize.File, s styles, purchases []types.PurchaseDetail) error {
	if err := newSheet(f, SheetPurchases); err != nil {
		return err
	}
	if err := writeHeader(f, s, SheetPurchases, "Item", "Manufacturer", "Unit Cost", "Units"); err != nil {
		return err
	}
	for i, p := range purchases {
		if err := writeRow(f, SheetPurchases, i+2, []any{p.Name, p.Manufacturer, p.Cost, p.Units}, 0, 0, s.money); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) writeOrganizations(f *excelize.File, s styles, organizations []types.OrganizationDetail) error {
	if err := newSheet(f, SheetOrganizations); err != nil {
		return err
	}
	if err := writeHeader(f, s, SheetOrganizations, "Name", "Website"); err != nil {
		return err
	}
	for i, o := range organizations {
		if err := writeRow(f, SheetOrganizations, i+2, []any{o.Name, o.Website}); err != nil {
			return err
		}
	}
	return nil
}
