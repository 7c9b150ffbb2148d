package estimation

// Calculator encapsulates one specific part of the estimation (e.g. "federal income tax", "contribution").
type Calculator interface {
	// Name returns the human-readable name of this calculator, used as the key in Engine results.
	Name() string
	// Keys returns the list of Param keys this calculator depends on.
	Keys() []string
	// Calculate runs the estimation using the provided params and returns an Estimation or an error.
	Calculate(params map[string]Param) (Estimation, error)
}

// Param represents an input for a Calculator (either user supplied or produced by an earlier Calculator)
type Param struct {
	Key   string      // Unique identifier (e.g., "annual_income")
	Value interface{} // The actual value (e.g., 60000.0)
}

// Estimation the result of a Calculator calculation
type Estimation struct {
	Amount float64
	Reason string
	// Failed is set when the calculator returned an error; Reason then carries it.
	Failed bool
}
