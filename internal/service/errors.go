package service

import (
	"fmt"
)

type ErrInvalidSchedule struct {
	error
}

func NewErrInvalidSchedule(err error) *ErrInvalidSchedule {
	return &ErrInvalidSchedule{fmt.Errorf("invalid bracket schedule: %w", err)}
}

type ErrInvalidMultiplier struct {
	error
}

func NewErrInvalidMultiplier(multiplier float64) *ErrInvalidMultiplier {
	return &ErrInvalidMultiplier{fmt.Errorf("contribution multiplier must be a finite non-negative number, got %v", multiplier)}
}

type ErrUnsupportedReportFormat struct {
	error
}

func NewErrUnsupportedReportFormat(format string) *ErrUnsupportedReportFormat {
	return &ErrUnsupportedReportFormat{fmt.Errorf("unsupported report format: %q", format)}
}

type ErrEstimationFailed struct {
	error
}

func NewErrEstimationFailed(calculator, reason string) *ErrEstimationFailed {
	return &ErrEstimationFailed{fmt.Errorf("%s calculation failed: %s", calculator, reason)}
}
