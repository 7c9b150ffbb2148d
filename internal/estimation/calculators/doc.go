// Package calculators provides concrete Calculator implementations for the estimation engine.
//
// FederalIncomeTax applies a progressive bracket Schedule to an annual income and
// Contribution scales the resulting tax by a fixed multiplier for display. Calculators
// are composed via the estimation.Engine and accept input through estimation.Param slices.
package calculators
