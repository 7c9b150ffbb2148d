package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/incomewatch/tax-estimator/internal/service"
	"github.com/incomewatch/tax-estimator/internal/service/report/xlsx"
)

var _ = Describe("ReportService", func() {
	var (
		reportSrv *service.ReportService
		estimate  *service.TaxEstimate
	)

	BeforeEach(func() {
		estimationSrv, err := service.NewEstimationService()
		Expect(err).ToNot(HaveOccurred())
		estimate, err = estimationSrv.EstimateIncome(context.Background(), 60000)
		Expect(err).ToNot(HaveOccurred())

		reportSrv = service.NewReportService().WithClock(func() time.Time {
			return time.Date(2024, time.April, 15, 9, 30, 0, 0, time.UTC)
		})
	})

	It("lists every supported format", func() {
		Expect(reportSrv.SupportedFormats()).To(ConsistOf(service.ReportFormatCSV, service.ReportFormatHTML, service.ReportFormatXLSX))
	})

	Context("csv", func() {
		It("renders the summary and bracket breakdown", func() {
			content, err := reportSrv.GenerateReport(estimate, service.ReportOptions{Format: service.ReportFormatCSV})
			Expect(err).ToNot(HaveOccurred())

			reader := csv.NewReader(bytes.NewReader(content))
			reader.FieldsPerRecord = -1
			rows, err := reader.ReadAll()
			Expect(err).ToNot(HaveOccurred())

			Expect(rows[0]).To(Equal([]string{"INCOME TAX ESTIMATE"}))
			Expect(rows[1]).To(Equal([]string{"Generated: April 15, 2024 at 09:30:00"}))
			Expect(rows).To(ContainElement([]string{"Annual Income", "$60,000.00"}))
			Expect(rows).To(ContainElement([]string{"Federal Income Tax", "$8,253.00"}))
			Expect(rows).To(ContainElement([]string{"Contribution", "$33.99"}))
			Expect(rows).To(ContainElement([]string{"22%", "$47,150.00", "$100,525.00", "$12,850.00", "$2,827.00"}))
			Expect(string(content)).ToNot(ContainSubstring("ORGANIZATIONS"))
		})

		It("adds the comparisons on request", func() {
			content, err := reportSrv.GenerateReport(estimate, service.ReportOptions{Format: service.ReportFormatCSV, IncludeComparisons: true})
			Expect(err).ToNot(HaveOccurred())
			Expect(string(content)).To(ContainSubstring("WHAT YOUR CONTRIBUTION BUYS"))
			Expect(string(content)).To(ContainSubstring("AGM-114 Hellfire Missile"))
			Expect(string(content)).To(ContainSubstring("https://www.pcrf.net/"))
		})
	})

	Context("html", func() {
		It("renders a standalone page", func() {
			content, err := reportSrv.GenerateReport(estimate, service.ReportOptions{Format: service.ReportFormatHTML, IncludeComparisons: true})
			Expect(err).ToNot(HaveOccurred())

			page := string(content)
			Expect(page).To(HavePrefix("<!DOCTYPE html>"))
			Expect(page).To(ContainSubstring("$8,253.00"))
			Expect(page).To(ContainSubstring("💪 Keep grinding!"))
			Expect(page).To(ContainSubstring("Contribution: $33.99"))
			Expect(page).ToNot(ContainSubstring("and above"))
			// names are escaped
			Expect(page).To(ContainSubstring("Palestine Children&#39;s Relief Fund"))
		})

		It("marks the top bracket as open ended", func() {
			estimationSrv, err := service.NewEstimationService()
			Expect(err).ToNot(HaveOccurred())
			top, err := estimationSrv.EstimateIncome(context.Background(), 1000000)
			Expect(err).ToNot(HaveOccurred())

			content, err := reportSrv.GenerateReport(top, service.ReportOptions{Format: service.ReportFormatHTML})
			Expect(err).ToNot(HaveOccurred())

			page := string(content)
			Expect(page).To(ContainSubstring("$328,187.75"))
			Expect(page).To(ContainSubstring("and above"))
		})
	})

	Context("xlsx", func() {
		It("renders a workbook with one sheet per section", func() {
			content, err := reportSrv.GenerateReport(estimate, service.ReportOptions{Format: service.ReportFormatXLSX, IncludeComparisons: true})
			Expect(err).ToNot(HaveOccurred())

			f, err := excelize.OpenReader(bytes.NewReader(content))
			Expect(err).ToNot(HaveOccurred())
			defer func() { _ = f.Close() }()

			Expect(f.GetSheetList()).To(Equal([]string{xlsx.SheetSummary, xlsx.SheetBrackets, xlsx.SheetPurchases, xlsx.SheetOrganizations}))

			rows, err := f.GetRows(xlsx.SheetBrackets)
			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(4))
			Expect(rows[0]).To(Equal([]string{"Rate", "From", "To", "Taxable Income", "Tax"}))

			label, err := f.GetCellValue(xlsx.SheetSummary, "A3")
			Expect(err).ToNot(HaveOccurred())
			Expect(label).To(Equal("Annual Income"))
		})

		It("leaves out the comparison sheets by default", func() {
			content, err := reportSrv.GenerateReport(estimate, service.ReportOptions{Format: service.ReportFormatXLSX})
			Expect(err).ToNot(HaveOccurred())

			f, err := excelize.OpenReader(bytes.NewReader(content))
			Expect(err).ToNot(HaveOccurred())
			defer func() { _ = f.Close() }()
			Expect(f.GetSheetList()).To(Equal([]string{xlsx.SheetSummary, xlsx.SheetBrackets}))
		})
	})

	It("rejects an unsupported format", func() {
		_, err := reportSrv.GenerateReport(estimate, service.ReportOptions{Format: "pdf"})
		Expect(err).To(HaveOccurred())
		var unsupported *service.ErrUnsupportedReportFormat
		Expect(err).To(BeAssignableToTypeOf(unsupported))
	})
})
