package calculators

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/incomewatch/tax-estimator/internal/estimation"
	"github.com/incomewatch/tax-estimator/internal/income"
)

const (
	// ParamAnnualIncome is the estimation.Param key for the annual income in dollars.
	ParamAnnualIncome = "annual_income"
	// FederalIncomeTaxName is the name FederalIncomeTax results are reported (and published) under.
	FederalIncomeTaxName = "Federal Income Tax"
)

// Compile-time assertion that FederalIncomeTax implements the Calculator interface.
var _ estimation.Calculator = (*FederalIncomeTax)(nil)

// FederalIncomeTax estimates the federal income tax owed on an annual income using a progressive Schedule.
type FederalIncomeTax struct {
	schedule Schedule
}

// FederalIncomeTaxOption is a functional option for configuring a FederalIncomeTax calculator.
type FederalIncomeTaxOption func(*FederalIncomeTax)

// WithSchedule replaces the default 2024 single-filer brackets.
// An invalid schedule is ignored and the default is kept.
func WithSchedule(schedule Schedule) FederalIncomeTaxOption {
	return func(f *FederalIncomeTax) {
		if schedule.Validate() == nil {
			f.schedule = append(Schedule(nil), schedule...)
		}
	}
}

// NewFederalIncomeTax creates a FederalIncomeTax calculator using Single2024 brackets.
// Optional FederalIncomeTaxOption values can be supplied to override the defaults.
func NewFederalIncomeTax(opts ...FederalIncomeTaxOption) *FederalIncomeTax {
	res := FederalIncomeTax{
		schedule: Single2024(),
	}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

// Name returns the human-readable name of this calculator.
func (c *FederalIncomeTax) Name() string {
	return FederalIncomeTaxName
}

// Keys returns the list of parameter keys required by this calculator.
func (c *FederalIncomeTax) Keys() []string {
	return []string{ParamAnnualIncome}
}

// Schedule returns a copy of the brackets in use.
func (c *FederalIncomeTax) Schedule() Schedule {
	return append(Schedule(nil), c.schedule...)
}

// Calculate applies the bracket schedule to ParamAnnualIncome.
// Negative or non-finite income is taxed as 0.
func (c *FederalIncomeTax) Calculate(params map[string]estimation.Param) (estimation.Estimation, error) {
	incomeParam, ok := params[ParamAnnualIncome]
	if !ok {
		return estimation.Estimation{}, fmt.Errorf("missing %s", ParamAnnualIncome)
	}

	annualIncome, err := getFloat(incomeParam)
	if err != nil {
		return estimation.Estimation{}, err
	}
	annualIncome = income.Clamp(annualIncome)

	slices := c.schedule.Breakdown(annualIncome)
	return estimation.Estimation{
		Amount: c.schedule.Tax(annualIncome),
		Reason: fmt.Sprintf("$%s across %d bracket(s), marginal rate %.0f%%",
			humanize.CommafWithDigits(annualIncome, 2), len(slices), c.schedule.MarginalRate(annualIncome)*100),
	}, nil
}
