package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/incomewatch/tax-estimator/internal/catalog"
	"github.com/incomewatch/tax-estimator/internal/estimation"
	"github.com/incomewatch/tax-estimator/internal/estimation/calculators"
	"github.com/incomewatch/tax-estimator/internal/income"
	"github.com/incomewatch/tax-estimator/pkg/metrics"
	"github.com/incomewatch/tax-estimator/pkg/requestid"
)

// TaxEstimate is the outcome of one estimation.
type TaxEstimate struct {
	Income        float64
	FederalTax    float64
	Contribution  float64
	Reaction      string
	MarginalRate  float64
	EffectiveRate float64
	Breakdown     []calculators.Slice
	Purchases     []catalog.Purchase
	Organizations []catalog.Organization
	Details       map[string]estimation.Estimation
}

// EstimationService runs an income through the estimation Engine and attaches the
// reference tables to the result.
//
// All of its state is fixed at construction, so it is safe for concurrent use.
type EstimationService struct {
	engine       *estimation.Engine
	federalTax   *calculators.FederalIncomeTax
	contribution *calculators.Contribution
	catalog      *catalog.Catalog
	logger       *zap.SugaredLogger
}

type estimationServiceOptions struct {
	schedule   calculators.Schedule
	catalog    *catalog.Catalog
	multiplier float64
}

type EstimationServiceOption func(*estimationServiceOptions)

// WithSchedule replaces the 2024 single-filer brackets.
func WithSchedule(schedule calculators.Schedule) EstimationServiceOption {
	return func(o *estimationServiceOptions) {
		o.schedule = schedule
	}
}

// WithCatalog replaces the built-in reference tables.
func WithCatalog(c *catalog.Catalog) EstimationServiceOption {
	return func(o *estimationServiceOptions) {
		o.catalog = c
	}
}

// WithContributionMultiplier replaces calculators.DefaultMultiplier.
func WithContributionMultiplier(multiplier float64) EstimationServiceOption {
	return func(o *estimationServiceOptions) {
		o.multiplier = multiplier
	}
}

// NewEstimationService creates an EstimationService with the federal income tax and
// contribution calculators registered, in that order.
func NewEstimationService(opts ...EstimationServiceOption) (*EstimationService, error) {
	o := estimationServiceOptions{
		schedule:   calculators.Single2024(),
		multiplier: calculators.DefaultMultiplier,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.schedule.Validate(); err != nil {
		return nil, NewErrInvalidSchedule(err)
	}
	if o.multiplier < 0 || math.IsNaN(o.multiplier) || math.IsInf(o.multiplier, 0) {
		return nil, NewErrInvalidMultiplier(o.multiplier)
	}
	if o.catalog == nil {
		o.catalog = catalog.Default()
	}

	federalTax := calculators.NewFederalIncomeTax(calculators.WithSchedule(o.schedule))
	contribution := calculators.NewContribution(calculators.WithMultiplier(o.multiplier))

	engine := estimation.NewEngine()
	engine.Register(federalTax)
	engine.Register(contribution)

	return &EstimationService{
		engine:       engine,
		federalTax:   federalTax,
		contribution: contribution,
		catalog:      o.catalog,
		logger:       zap.S().Named("estimation_service"),
	}, nil
}

// NewEstimationServiceFromFiles builds an EstimationService from optional bracket and
// catalog files. Empty paths keep the built-in tables.
func NewEstimationServiceFromFiles(bracketsFile, catalogFile string, multiplier float64) (*EstimationService, error) {
	opts := []EstimationServiceOption{WithContributionMultiplier(multiplier)}

	if bracketsFile != "" {
		schedule, err := calculators.LoadSchedule(bracketsFile)
		if err != nil {
			return nil, NewErrInvalidSchedule(err)
		}
		opts = append(opts, WithSchedule(schedule))
	}

	if catalogFile != "" {
		c, err := catalog.Load(catalogFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithCatalog(c))
	}

	return NewEstimationService(opts...)
}

// Estimate parses raw as an income and estimates it. Values that are not numbers are
// estimated as 0; this never fails because of the input.
func (es *EstimationService) Estimate(ctx context.Context, raw string) (*TaxEstimate, error) {
	annualIncome, err := income.ParseStrict(raw)
	if err != nil {
		metrics.IncreaseCoercedIncomeMetric()
		es.logger.Debugw("income is not a number, using 0", "input", raw, "request_id", requestid.FromContext(ctx))
	}
	return es.EstimateIncome(ctx, annualIncome)
}

// EstimateIncome estimates a numeric income. Negative and non-finite values are estimated as 0.
func (es *EstimationService) EstimateIncome(ctx context.Context, annualIncome float64) (*TaxEstimate, error) {
	annualIncome = income.Clamp(annualIncome)

	results := es.engine.Run([]estimation.Param{
		{Key: calculators.ParamAnnualIncome, Value: annualIncome},
	})
	for _, name := range es.engine.Names() {
		if r := results[name]; r.Failed {
			es.logger.Errorw("calculator failed", "calculator", name, "reason", r.Reason, "request_id", requestid.FromContext(ctx))
			return nil, NewErrEstimationFailed(name, r.Reason)
		}
	}

	schedule := es.federalTax.Schedule()
	tax := results[calculators.FederalIncomeTaxName].Amount
	contribution := results[calculators.ContributionName].Amount
	tier := ReactionTier(annualIncome)

	metrics.IncreaseEstimationsTotalMetric(tier)
	metrics.ObserveEstimatedTaxMetric(tax)

	es.logger.Debugw("estimated", "income", annualIncome, "tax", tax, "contribution", contribution, "request_id", requestid.FromContext(ctx))

	return &TaxEstimate{
		Income:        annualIncome,
		FederalTax:    tax,
		Contribution:  contribution,
		Reaction:      Reaction(annualIncome),
		MarginalRate:  schedule.MarginalRate(annualIncome),
		EffectiveRate: schedule.EffectiveRate(annualIncome),
		Breakdown:     schedule.Breakdown(annualIncome),
		Purchases:     es.catalog.Purchases(contribution),
		Organizations: append([]catalog.Organization(nil), es.catalog.Organizations...),
		Details:       results,
	}, nil
}

// Schedule returns a copy of the brackets in use.
func (es *EstimationService) Schedule() calculators.Schedule {
	return es.federalTax.Schedule()
}

// Catalog returns the reference tables in use. The result must not be modified.
func (es *EstimationService) Catalog() *catalog.Catalog {
	return es.catalog
}

// Multiplier returns the contribution multiplier in use.
func (es *EstimationService) Multiplier() float64 {
	return es.contribution.Multiplier()
}
