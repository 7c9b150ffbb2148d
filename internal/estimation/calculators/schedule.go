package calculators

import (
	"errors"
	"fmt"
	"math"
	"os"

	perrors "github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/incomewatch/tax-estimator/internal/income"
)

var (
	ErrEmptySchedule     = errors.New("schedule has no brackets")
	ErrCapsNotIncreasing = errors.New("bracket caps must strictly increase")
	ErrRateOutOfRange    = errors.New("bracket rate must be within [0, 1]")
	ErrUnboundedTop      = errors.New("only the last bracket may be unbounded and it must be")
)

// Bracket is a marginal rate applied to the income between the previous bracket's cap and Cap.
type Bracket struct {
	Rate float64
	Cap  float64
}

// Unbounded reports whether the bracket has no upper limit.
func (b Bracket) Unbounded() bool {
	return math.IsInf(b.Cap, 1)
}

// Schedule is an ordered list of brackets covering [0, +Inf).
type Schedule []Bracket

// Slice is the portion of an income taxed within one bracket.
type Slice struct {
	Rate    float64
	Floor   float64
	Cap     float64
	Taxable float64
	Tax     float64
}

// Single2024 returns the 2024 US federal income tax brackets for a single filer.
func Single2024() Schedule {
	return Schedule{
		{Rate: 0.10, Cap: 11600},
		{Rate: 0.12, Cap: 47150},
		{Rate: 0.22, Cap: 100525},
		{Rate: 0.24, Cap: 191950},
		{Rate: 0.32, Cap: 243725},
		{Rate: 0.35, Cap: 609350},
		{Rate: 0.37, Cap: math.Inf(1)},
	}
}

// Validate checks that the caps strictly increase from a positive first cap to an
// unbounded last bracket and that every rate lies in [0, 1].
func (s Schedule) Validate() error {
	if len(s) == 0 {
		return ErrEmptySchedule
	}

	previousCap := 0.0
	for i, b := range s {
		if math.IsNaN(b.Rate) || b.Rate < 0 || b.Rate > 1 {
			return fmt.Errorf("bracket %d: %w (got %v)", i, ErrRateOutOfRange, b.Rate)
		}
		if math.IsNaN(b.Cap) || b.Cap <= previousCap {
			return fmt.Errorf("bracket %d: %w (cap %v after %v)", i, ErrCapsNotIncreasing, b.Cap, previousCap)
		}
		if b.Unbounded() != (i == len(s)-1) {
			return fmt.Errorf("bracket %d: %w", i, ErrUnboundedTop)
		}
		previousCap = b.Cap
	}
	return nil
}

// Tax returns the total tax owed on income.
//
// Income equal to a bracket cap does not exceed it and is taxed at that bracket's rate.
// Negative or non-finite income is treated as 0.
func (s Schedule) Tax(annualIncome float64) float64 {
	annualIncome = income.Clamp(annualIncome)

	tax := 0.0
	previousCap := 0.0
	for _, b := range s {
		if annualIncome > b.Cap {
			tax += (b.Cap - previousCap) * b.Rate
			previousCap = b.Cap
			continue
		}
		tax += (annualIncome - previousCap) * b.Rate
		break
	}
	return tax
}

// Breakdown returns the per-bracket slices of income up to and including the marginal bracket.
// The slices' Tax values sum to Tax(income).
func (s Schedule) Breakdown(annualIncome float64) []Slice {
	annualIncome = income.Clamp(annualIncome)

	slices := make([]Slice, 0, len(s))
	previousCap := 0.0
	for _, b := range s {
		taxable := b.Cap - previousCap
		last := annualIncome <= b.Cap
		if last {
			taxable = annualIncome - previousCap
		}
		slices = append(slices, Slice{
			Rate:    b.Rate,
			Floor:   previousCap,
			Cap:     b.Cap,
			Taxable: taxable,
			Tax:     taxable * b.Rate,
		})
		if last {
			break
		}
		previousCap = b.Cap
	}
	return slices
}

// MarginalRate returns the rate of the bracket the last dollar of income falls into.
func (s Schedule) MarginalRate(annualIncome float64) float64 {
	annualIncome = income.Clamp(annualIncome)
	for _, b := range s {
		if annualIncome <= b.Cap {
			return b.Rate
		}
	}
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Rate
}

// EffectiveRate returns Tax(income) / income, or 0 for a zero income.
func (s Schedule) EffectiveRate(annualIncome float64) float64 {
	annualIncome = income.Clamp(annualIncome)
	if annualIncome == 0 {
		return 0
	}
	return s.Tax(annualIncome) / annualIncome
}

type bracketFile struct {
	Brackets []bracketEntry `json:"brackets" validate:"required,min=1,dive"`
}

type bracketEntry struct {
	Rate *float64 `json:"rate" validate:"required,gte=0,lte=1"`
	Cap  *float64 `json:"cap,omitempty" validate:"omitempty,gt=0"`
}

// ParseSchedule reads a YAML (or JSON) bracket table:
//
//	brackets:
//	  - rate: 0.10
//	    cap: 11600
//	  - rate: 0.12
//
// The cap of the last bracket must be omitted; it is unbounded.
func ParseSchedule(data []byte) (Schedule, error) {
	var f bracketFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, perrors.Wrap(err, "decoding bracket table")
	}
	if err := structValidator.Struct(f); err != nil {
		return nil, perrors.Wrap(err, "invalid bracket table")
	}

	schedule := make(Schedule, 0, len(f.Brackets))
	for _, e := range f.Brackets {
		b := Bracket{Rate: *e.Rate, Cap: math.Inf(1)}
		if e.Cap != nil {
			b.Cap = *e.Cap
		}
		schedule = append(schedule, b)
	}

	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	return schedule, nil
}

// LoadSchedule reads and validates a bracket table file. See ParseSchedule for the format.
func LoadSchedule(path string) (Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, perrors.Wrapf(err, "reading bracket table %s", path)
	}
	schedule, err := ParseSchedule(data)
	if err != nil {
		return nil, perrors.Wrapf(err, "loading bracket table %s", path)
	}
	return schedule, nil
}
