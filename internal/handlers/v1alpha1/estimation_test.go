package v1alpha1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	api "github.com/incomewatch/tax-estimator/api/v1alpha1"
	handlers "github.com/incomewatch/tax-estimator/internal/handlers/v1alpha1"
	"github.com/incomewatch/tax-estimator/internal/service"
	"github.com/incomewatch/tax-estimator/pkg/requestid"
)

var _ = Describe("estimation handlers", func() {
	var router chi.Router

	BeforeEach(func() {
		estimationSrv, err := service.NewEstimationService()
		Expect(err).ToNot(HaveOccurred())

		router = chi.NewRouter()
		handlers.RegisterApi(router, handlers.NewServiceHandler(estimationSrv, service.NewReportService()))
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	decodeEstimate := func(rec *httptest.ResponseRecorder) api.Estimate {
		var estimate api.Estimate
		Expect(json.Unmarshal(rec.Body.Bytes(), &estimate)).To(Succeed())
		return estimate
	}

	Context("GET /api/v1/estimate", func() {
		It("estimates the income from the query", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/api/v1/estimate?income=60000", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(HavePrefix("application/json"))

			estimate := decodeEstimate(rec)
			Expect(estimate.Income).To(Equal(60000.0))
			Expect(estimate.FederalTax).To(BeNumerically("~", 8253, 1e-6))
			Expect(estimate.FormattedIncome).To(Equal("60,000"))
			Expect(estimate.FormattedFederalTax).To(Equal("$8,253.00"))
			Expect(estimate.Reaction).To(Equal("💪 Keep grinding!"))
			Expect(estimate.Breakdown).To(HaveLen(3))
			Expect(estimate.Purchases).To(HaveLen(6))
			Expect(estimate.Organizations).To(HaveLen(4))
		})

		It("treats a missing income as zero", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/api/v1/estimate", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))
			estimate := decodeEstimate(rec)
			Expect(estimate.Income).To(BeZero())
			Expect(estimate.FederalTax).To(BeZero())
		})

		It("treats a non-numeric income as zero", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/api/v1/estimate?income=abc", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decodeEstimate(rec).FederalTax).To(BeZero())
		})
	})

	Context("POST /api/v1/estimate", func() {
		post := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			return serve(req)
		}

		DescribeTable("accepts every income encoding",
			func(body string, wantIncome float64) {
				rec := post(body)
				Expect(rec.Code).To(Equal(http.StatusOK))
				Expect(decodeEstimate(rec).Income).To(Equal(wantIncome))
			},
			Entry("string", `{"income":"60000"}`, 60000.0),
			Entry("number", `{"income":60000}`, 60000.0),
			Entry("grouped string", `{"income":"1,000,000"}`, 1000000.0),
			Entry("null", `{"income":null}`, 0.0),
			Entry("absent", `{}`, 0.0),
			Entry("garbage string", `{"income":"lots"}`, 0.0),
			Entry("negative", `{"income":-10}`, 0.0),
		)

		It("rejects malformed JSON", func() {
			rec := post(`{"income":`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var apiErr api.Error
			Expect(json.Unmarshal(rec.Body.Bytes(), &apiErr)).To(Succeed())
			Expect(apiErr.Message).To(ContainSubstring("invalid request body"))
		})

		It("rejects an empty body", func() {
			rec := post("")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("empty body"))
		})

		It("echoes the request id in errors", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", strings.NewReader("nope"))
			req = req.WithContext(requestid.ToContext(req.Context(), "req-123"))
			rec := serve(req)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var apiErr api.Error
			Expect(json.Unmarshal(rec.Body.Bytes(), &apiErr)).To(Succeed())
			Expect(apiErr.RequestId).ToNot(BeNil())
			Expect(*apiErr.RequestId).To(Equal("req-123"))
		})
	})

	Context("GET /api/v1/estimate/report", func() {
		It("defaults to a csv attachment", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/api/v1/estimate/report?income=60000", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("text/csv; charset=utf-8"))
			Expect(rec.Header().Get("Content-Disposition")).To(Equal(`attachment; filename="tax-estimate-60000.csv"`))
			Expect(rec.Body.String()).To(ContainSubstring("$8,253.00"))
			Expect(rec.Body.String()).To(ContainSubstring("ORGANIZATIONS"))
		})

		It("leaves out comparisons on request", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/api/v1/estimate/report?income=60000&comparisons=false", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).ToNot(ContainSubstring("ORGANIZATIONS"))
		})

		It("renders html", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/api/v1/estimate/report?income=60000&format=html", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(HavePrefix("text/html"))
			Expect(rec.Body.String()).To(HavePrefix("<!DOCTYPE html>"))
		})

		It("renders a workbook", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/api/v1/estimate/report?income=60000&format=xlsx", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Disposition")).To(ContainSubstring("tax-estimate-60000.xlsx"))

			f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
			Expect(err).ToNot(HaveOccurred())
			defer func() { _ = f.Close() }()
			Expect(f.GetSheetList()).To(ContainElement("Brackets"))
		})

		It("rejects an unknown format", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/api/v1/estimate/report?income=60000&format=pdf", nil))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("not a supported report format"))
		})

		It("rejects a non-boolean comparisons flag", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/api/v1/estimate/report?comparisons=maybe", nil))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("reference tables", func() {
		It("lists the brackets with an open top bracket", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/api/v1/brackets", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))

			var brackets api.BracketList
			Expect(json.Unmarshal(rec.Body.Bytes(), &brackets)).To(Succeed())
			Expect(brackets.Brackets).To(HaveLen(7))
			Expect(brackets.Brackets[6].Cap).To(BeNil())
			Expect(*brackets.Brackets[0].Cap).To(Equal(11600.0))
		})

		It("returns the catalog", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))

			var c api.Catalog
			Expect(json.Unmarshal(rec.Body.Bytes(), &c)).To(Succeed())
			Expect(c.Items).To(HaveLen(6))
			Expect(c.Organizations).To(HaveLen(4))
		})
	})
})
