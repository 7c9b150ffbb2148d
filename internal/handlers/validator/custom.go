package validator

import (
	"math"
	"os"

	"github.com/go-playground/validator/v10"

	api "github.com/incomewatch/tax-estimator/api/v1alpha1"
)

func reportFormatValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, ok = api.StringToReportFormat(val)
	return ok
}

func multiplierValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(float64)
	if !ok {
		return false
	}

	return val >= 0 && !math.IsInf(val, 0)
}

// optionalFileValidator accepts an empty path or the path of a regular file.
func optionalFileValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	if val == "" {
		return true
	}

	info, err := os.Stat(val)
	return err == nil && info.Mode().IsRegular()
}
