package service_test

import (
	"context"
	"math"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/incomewatch/tax-estimator/internal/catalog"
	"github.com/incomewatch/tax-estimator/internal/estimation/calculators"
	"github.com/incomewatch/tax-estimator/internal/service"
)

var _ = Describe("EstimationService", func() {
	var (
		estimationSrv *service.EstimationService
		ctx           context.Context
	)

	BeforeEach(func() {
		var err error
		estimationSrv, err = service.NewEstimationService()
		Expect(err).ToNot(HaveOccurred())
		ctx = context.Background()
	})

	Describe("Estimate", func() {
		It("estimates a plain income", func() {
			result, err := estimationSrv.Estimate(ctx, "60000")
			Expect(err).ToNot(HaveOccurred())

			Expect(result.Income).To(Equal(60000.0))
			Expect(result.FederalTax).To(BeNumerically("~", 8253, 1e-6))
			Expect(result.Contribution).To(BeNumerically("~", 8253*calculators.DefaultMultiplier, 1e-9))
			Expect(result.MarginalRate).To(Equal(0.22))
			Expect(result.EffectiveRate).To(BeNumerically("~", 8253.0/60000.0, 1e-9))
			Expect(result.Reaction).To(Equal("💪 Keep grinding!"))
			Expect(result.Breakdown).To(HaveLen(3))
		})

		It("accepts grouped and dollar-prefixed input", func() {
			result, err := estimationSrv.Estimate(ctx, "$1,000,000")
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Income).To(Equal(1000000.0))
			Expect(result.FederalTax).To(BeNumerically("~", 328187.75, 1e-6))
			Expect(result.Reaction).To(Equal("💸 Big spender alert!"))
		})

		DescribeTable("treats unusable input as zero",
			func(raw string) {
				result, err := estimationSrv.Estimate(ctx, raw)
				Expect(err).ToNot(HaveOccurred())
				Expect(result.Income).To(BeZero())
				Expect(result.FederalTax).To(BeZero())
				Expect(result.Contribution).To(BeZero())
				Expect(result.EffectiveRate).To(BeZero())
			},
			Entry("empty", ""),
			Entry("letters", "abc"),
			Entry("trailing garbage", "12abc"),
			Entry("negative", "-5000"),
			Entry("NaN", "NaN"),
		)

		It("keeps calculator details keyed by name", func() {
			result, err := estimationSrv.Estimate(ctx, "11600")
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Details).To(HaveKey(calculators.FederalIncomeTaxName))
			Expect(result.Details).To(HaveKey(calculators.ContributionName))
			Expect(result.Details[calculators.FederalIncomeTaxName].Amount).To(BeNumerically("~", 1160, 1e-6))
		})
	})

	Describe("EstimateIncome", func() {
		It("clamps non-finite income", func() {
			result, err := estimationSrv.EstimateIncome(ctx, math.Inf(1))
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Income).To(BeZero())
			Expect(result.FederalTax).To(BeZero())
		})

		It("compares the contribution with every catalog item", func() {
			result, err := estimationSrv.EstimateIncome(ctx, 60000)
			Expect(err).ToNot(HaveOccurred())

			items := catalog.Default().Items
			Expect(result.Purchases).To(HaveLen(len(items)))
			Expect(result.Purchases[0].Item.Name).To(Equal("5.56x45mm NATO Rifle Cartridges"))
			Expect(result.Purchases[0].Units).To(BeNumerically("~", result.Contribution/1.20, 1e-9))
			Expect(result.Organizations).To(HaveLen(4))
		})
	})

	Context("with custom configuration", func() {
		It("uses a custom schedule and multiplier", func() {
			srv, err := service.NewEstimationService(
				service.WithSchedule(calculators.Schedule{{Rate: 0.5, Cap: math.Inf(1)}}),
				service.WithContributionMultiplier(0.5),
			)
			Expect(err).ToNot(HaveOccurred())

			result, err := srv.EstimateIncome(ctx, 100)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.FederalTax).To(Equal(50.0))
			Expect(result.Contribution).To(Equal(25.0))
			Expect(srv.Multiplier()).To(Equal(0.5))
			Expect(srv.Schedule()).To(HaveLen(1))
		})

		It("rejects an invalid schedule", func() {
			_, err := service.NewEstimationService(service.WithSchedule(calculators.Schedule{{Rate: 0.1, Cap: 100}}))
			Expect(err).To(HaveOccurred())
			var invalid *service.ErrInvalidSchedule
			Expect(err).To(BeAssignableToTypeOf(invalid))
		})

		It("rejects a negative multiplier", func() {
			_, err := service.NewEstimationService(service.WithContributionMultiplier(-1))
			Expect(err).To(HaveOccurred())
			var invalid *service.ErrInvalidMultiplier
			Expect(err).To(BeAssignableToTypeOf(invalid))
		})
	})

	Context("NewEstimationServiceFromFiles", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		It("keeps the built-in tables when no files are given", func() {
			srv, err := service.NewEstimationServiceFromFiles("", "", calculators.DefaultMultiplier)
			Expect(err).ToNot(HaveOccurred())
			Expect(srv.Schedule()).To(Equal(calculators.Single2024()))
			Expect(srv.Catalog().Items).To(HaveLen(6))
		})

		It("loads bracket and catalog files", func() {
			brackets := filepath.Join(dir, "brackets.yaml")
			Expect(os.WriteFile(brackets, []byte("brackets:\n  - rate: 0.1\n    cap: 1000\n  - rate: 0.2\n"), 0o600)).To(Succeed())
			catalogFile := filepath.Join(dir, "catalog.yaml")
			Expect(os.WriteFile(catalogFile, []byte("items:\n  - name: Widget\n    cost: 2\norganizations: []\n"), 0o600)).To(Succeed())

			srv, err := service.NewEstimationServiceFromFiles(brackets, catalogFile, 1)
			Expect(err).ToNot(HaveOccurred())

			result, err := srv.EstimateIncome(ctx, 2000)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.FederalTax).To(BeNumerically("~", 300, 1e-9))
			Expect(result.Purchases).To(HaveLen(1))
			Expect(result.Purchases[0].Units).To(BeNumerically("~", 150, 1e-9))
		})

		It("reports a broken bracket file as an invalid schedule", func() {
			brackets := filepath.Join(dir, "brackets.yaml")
			Expect(os.WriteFile(brackets, []byte("brackets: []\n"), 0o600)).To(Succeed())

			_, err := service.NewEstimationServiceFromFiles(brackets, "", calculators.DefaultMultiplier)
			var invalid *service.ErrInvalidSchedule
			Expect(err).To(BeAssignableToTypeOf(invalid))
		})

		It("fails on a missing catalog file", func() {
			_, err := service.NewEstimationServiceFromFiles("", filepath.Join(dir, "missing.yaml"), calculators.DefaultMultiplier)
			Expect(err).To(HaveOccurred())
		})
	})
})
