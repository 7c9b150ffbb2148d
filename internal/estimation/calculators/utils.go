package calculators

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/incomewatch/tax-estimator/internal/estimation"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

func getFloat(p estimation.Param) (float64, error) {
	switch v := p.Value.(type) {
	case float64:
		return v, nil // JSON default
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	default:
		return 0.0, fmt.Errorf("param %s is not a number (type: %T)", p.Key, p.Value)
	}
}
