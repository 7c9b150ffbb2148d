package service

import (
	"time"

	"github.com/samber/lo"

	"github.com/incomewatch/tax-estimator/internal/catalog"
	"github.com/incomewatch/tax-estimator/internal/estimation/calculators"
	"github.com/incomewatch/tax-estimator/internal/service/report/csv"
	"github.com/incomewatch/tax-estimator/internal/service/report/html"
	"github.com/incomewatch/tax-estimator/internal/service/report/types"
	"github.com/incomewatch/tax-estimator/internal/service/report/xlsx"
	"github.com/incomewatch/tax-estimator/pkg/metrics"
)

type ReportRenderer = types.ReportRenderer
type ReportFormat = types.ReportFormat
type ReportOptions = types.ReportOptions
type ReportData = types.ReportData

const (
	ReportFormatCSV  = types.ReportFormatCSV
	ReportFormatHTML = types.ReportFormatHTML
	ReportFormatXLSX = types.ReportFormatXLSX
)

type ReportService struct {
	renderers map[types.ReportFormat]types.ReportRenderer
	now       func() time.Time
}

func NewReportService() *ReportService {
	service := &ReportService{
		renderers: make(map[types.ReportFormat]types.ReportRenderer),
		now:       time.Now,
	}

	for _, renderer := range []types.ReportRenderer{csv.NewRenderer(), html.NewRenderer(), xlsx.NewRenderer()} {
		service.renderers[renderer.SupportedFormat()] = renderer
	}

	return service
}

// WithClock replaces the time source used for the report timestamps.
func (r *ReportService) WithClock(now func() time.Time) *ReportService {
	r.now = now
	return r
}

// SupportedFormats lists the formats GenerateReport accepts.
func (r *ReportService) SupportedFormats() []types.ReportFormat {
	return []types.ReportFormat{ReportFormatCSV, ReportFormatHTML, ReportFormatXLSX}
}

func (r *ReportService) GenerateReport(estimate *TaxEstimate, options types.ReportOptions) ([]byte, error) {
	renderer, exists := r.renderers[options.Format]
	if !exists {
		return nil, NewErrUnsupportedReportFormat(string(options.Format))
	}

	content, err := renderer.Render(r.reportData(estimate, options))
	if err != nil {
		return nil, err
	}

	metrics.IncreaseReportsTotalMetric(string(options.Format))
	return content, nil
}

func (r *ReportService) reportData(estimate *TaxEstimate, options types.ReportOptions) *types.ReportData {
	generated := r.now()
	return &types.ReportData{
		Summary: types.SummaryMetrics{
			Income:        estimate.Income,
			FederalTax:    estimate.FederalTax,
			Contribution:  estimate.Contribution,
			MarginalRate:  estimate.MarginalRate,
			EffectiveRate: estimate.EffectiveRate,
			Reaction:      estimate.Reaction,
		},
		Brackets: lo.Map(estimate.Breakdown, func(s calculators.Slice, _ int) types.BracketDetail {
			return types.BracketDetail{Rate: s.Rate, Floor: s.Floor, Cap: s.Cap, Taxable: s.Taxable, Tax: s.Tax}
		}),
		Purchases: lo.Map(estimate.Purchases, func(p catalog.Purchase, _ int) types.PurchaseDetail {
			return types.PurchaseDetail{Name: p.Item.Name, Manufacturer: p.Item.Manufacturer, Cost: p.Item.Cost, Units: p.Units}
		}),
		Organizations: lo.Map(estimate.Organizations, func(o catalog.Organization, _ int) types.OrganizationDetail {
			return types.OrganizationDetail{Name: o.Name, Website: o.Website}
		}),
		Options: options,
		Timestamps: types.ReportTimestamps{
			Generated:     generated.Format("January 2, 2006"),
			GeneratedTime: generated.Format("15:04:05"),
		},
	}
}
