package calculators

import (
	"fmt"
	"math"

	"github.com/incomewatch/tax-estimator/internal/estimation"
)

const (
	// ContributionName is the name Contribution results are reported under.
	ContributionName = "Contribution"
	// DefaultMultiplier is the share of federal income tax reported as the contribution.
	DefaultMultiplier = 0.00411817
)

// Compile-time assertion that Contribution implements the Calculator interface.
var _ estimation.Calculator = (*Contribution)(nil)

// Contribution derives the display-only contribution figure from the federal income tax.
// It must be registered after FederalIncomeTax.
type Contribution struct {
	multiplier float64
}

// ContributionOption is a functional option for configuring a Contribution calculator.
type ContributionOption func(*Contribution)

// WithMultiplier sets the share of the tax reported as the contribution.
// Negative and non-finite values are ignored and the default is kept.
func WithMultiplier(multiplier float64) ContributionOption {
	return func(c *Contribution) {
		if multiplier >= 0 && !math.IsInf(multiplier, 0) {
			c.multiplier = multiplier
		}
	}
}

// NewContribution creates a Contribution calculator with DefaultMultiplier.
func NewContribution(opts ...ContributionOption) *Contribution {
	res := Contribution{
		multiplier: DefaultMultiplier,
	}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

// Name returns the human-readable name of this calculator.
func (c *Contribution) Name() string {
	return ContributionName
}

// Keys returns the list of parameter keys required by this calculator.
func (c *Contribution) Keys() []string {
	return []string{FederalIncomeTaxName}
}

// Multiplier returns the multiplier in use.
func (c *Contribution) Multiplier() float64 {
	return c.multiplier
}

// Calculate multiplies the federal income tax result by the configured multiplier.
func (c *Contribution) Calculate(params map[string]estimation.Param) (estimation.Estimation, error) {
	taxParam, ok := params[FederalIncomeTaxName]
	if !ok {
		return estimation.Estimation{}, fmt.Errorf("missing %s", FederalIncomeTaxName)
	}

	tax, err := getFloat(taxParam)
	if err != nil {
		return estimation.Estimation{}, err
	}

	if tax < 0 {
		return estimation.Estimation{}, fmt.Errorf("%s must be non-negative", FederalIncomeTaxName)
	}

	return estimation.Estimation{
		Amount: tax * c.multiplier,
		Reason: fmt.Sprintf("%.2f tax at a multiplier of %g", tax, c.multiplier),
	}, nil
}
