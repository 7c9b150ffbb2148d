package service_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/incomewatch/tax-estimator/internal/service"
)

var _ = DescribeTable("Reaction",
	func(income float64, tier, message string) {
		Expect(service.ReactionTier(income)).To(Equal(tier))
		Expect(service.Reaction(income)).To(Equal(message))
	},
	Entry("zero", 0.0, service.TierKeepGrinding, "💪 Keep grinding!"),
	Entry("at the nice income threshold", 150000.0, service.TierKeepGrinding, "💪 Keep grinding!"),
	Entry("just above the nice income threshold", 150000.01, service.TierNiceIncome, "📈 Nice income!"),
	Entry("at the big spender threshold", 500000.0, service.TierNiceIncome, "📈 Nice income!"),
	Entry("above the big spender threshold", 500001.0, service.TierBigSpender, "💸 Big spender alert!"),
)
