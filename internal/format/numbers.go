package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Money formats v as dollars with digit grouping and two decimals, e.g. "$8,253.00".
func Money(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// Grouped formats v with digit grouping and at most two decimals, e.g. "60,000".
func Grouped(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

// Units formats a unit count with seven decimals.
func Units(v float64) string {
	return fmt.Sprintf("%.7f", v)
}

// Percent formats a rate in [0,1] as a percentage, e.g. 0.22 -> "22%", 0.1375 -> "13.75%".
func Percent(rate float64) string {
	s := fmt.Sprintf("%.2f", rate*100)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + "%"
}

// Cap formats a bracket cap, rendering the unbounded top bracket as "and above".
func Cap(v float64) string {
	if math.IsInf(v, 1) {
		return "and above"
	}
	return Money(v)
}
