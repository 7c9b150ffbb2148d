package mappers

import (
	"math"

	"github.com/samber/lo"

	api "github.com/incomewatch/tax-estimator/api/v1alpha1"
	"github.com/incomewatch/tax-estimator/internal/catalog"
	"github.com/incomewatch/tax-estimator/internal/estimation/calculators"
	"github.com/incomewatch/tax-estimator/internal/format"
	"github.com/incomewatch/tax-estimator/internal/service"
)

// capToApi maps the unbounded cap to nil since JSON has no infinity.
func capToApi(c float64) *float64 {
	if math.IsInf(c, 1) {
		return nil
	}
	return &c
}

func EstimateToApi(e *service.TaxEstimate) api.Estimate {
	return api.Estimate{
		Income:                e.Income,
		FormattedIncome:       format.Grouped(e.Income),
		FederalTax:            e.FederalTax,
		FormattedFederalTax:   format.Money(e.FederalTax),
		Contribution:          e.Contribution,
		FormattedContribution: format.Money(e.Contribution),
		MarginalRate:          e.MarginalRate,
		EffectiveRate:         e.EffectiveRate,
		Reaction:              e.Reaction,
		Breakdown: lo.Map(e.Breakdown, func(s calculators.Slice, _ int) api.BracketSlice {
			return api.BracketSlice{Rate: s.Rate, Floor: s.Floor, Cap: capToApi(s.Cap), Taxable: s.Taxable, Tax: s.Tax}
		}),
		Purchases: lo.Map(e.Purchases, func(p catalog.Purchase, _ int) api.Purchase {
			return api.Purchase{Name: p.Item.Name, Manufacturer: p.Item.Manufacturer, Cost: p.Item.Cost, Units: p.Units}
		}),
		Organizations: lo.Map(e.Organizations, func(o catalog.Organization, _ int) api.Organization {
			return OrganizationToApi(o)
		}),
	}
}

func ScheduleToApi(s calculators.Schedule) api.BracketList {
	return api.BracketList{
		Brackets: lo.Map(s, func(b calculators.Bracket, _ int) api.Bracket {
			return api.Bracket{Rate: b.Rate, Cap: capToApi(b.Cap)}
		}),
	}
}

func OrganizationToApi(o catalog.Organization) api.Organization {
	return api.Organization{Name: o.Name, Website: o.Website}
}

func CatalogToApi(c *catalog.Catalog) api.Catalog {
	return api.Catalog{
		Items: lo.Map(c.Items, func(i catalog.Item, _ int) api.CatalogItem {
			return api.CatalogItem{Name: i.Name, Manufacturer: i.Manufacturer, Cost: i.Cost}
		}),
		Organizations: lo.Map(c.Organizations, func(o catalog.Organization, _ int) api.Organization {
			return OrganizationToApi(o)
		}),
	}
}
