package service

const (
	bigSpenderThreshold = 500000
	niceIncomeThreshold = 150000
)

// Reaction tiers, used as metric labels.
const (
	TierBigSpender   = "big_spender"
	TierNiceIncome   = "nice_income"
	TierKeepGrinding = "keep_grinding"
)

var reactions = map[string]string{
	TierBigSpender:   "💸 Big spender alert!",
	TierNiceIncome:   "📈 Nice income!",
	TierKeepGrinding: "💪 Keep grinding!",
}

// ReactionTier places an income in one of the reaction tiers. Both thresholds are exclusive.
func ReactionTier(income float64) string {
	switch {
	case income > bigSpenderThreshold:
		return TierBigSpender
	case income > niceIncomeThreshold:
		return TierNiceIncome
	default:
		return TierKeepGrinding
	}
}

// Reaction returns the message shown next to an estimate for income.
func Reaction(income float64) string {
	return reactions[ReactionTier(income)]
}
