package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/incomewatch/tax-estimator/api/v1alpha1"
	"github.com/incomewatch/tax-estimator/internal/client"
	"github.com/incomewatch/tax-estimator/pkg/requestid"
)

var _ = Describe("estimator client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("Estimate", func() {
		It("posts the raw income", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.URL.Path).To(Equal("/api/v1/estimate"))
				Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))
				Expect(r.Header.Get(requestid.Header)).ToNot(BeEmpty())

				var req api.EstimateRequest
				Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
				Expect(req.Income.Raw).To(Equal("$60,000"))

				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(api.Estimate{Income: 60000, FederalTax: 8253})
			}))
			defer server.Close()

			estimate, err := client.NewEstimatorClient(server.URL, 5*time.Second).Estimate(ctx, "$60,000")
			Expect(err).ToNot(HaveOccurred())
			Expect(estimate.FederalTax).To(Equal(8253.0))
		})

		It("returns the server message on error", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(api.Error{Message: "invalid request body"})
			}))
			defer server.Close()

			_, err := client.NewEstimatorClient(server.URL, 0).Estimate(ctx, "1")
			Expect(err).To(MatchError(ContainSubstring("status 400: invalid request body")))
		})

		It("returns error when JSON unmarshal fails", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			}))
			defer server.Close()

			_, err := client.NewEstimatorClient(server.URL, 0).Estimate(ctx, "1")
			Expect(err).To(MatchError(ContainSubstring("failed to decode response")))
		})

		It("respects context cancellation", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
			}))
			defer server.Close()

			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := client.NewEstimatorClient(server.URL, 0).Estimate(cancelled, "1")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Report", func() {
		It("sends the report options as query parameters", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/api/v1/estimate/report"))
				Expect(r.URL.Query().Get("income")).To(Equal("60000"))
				Expect(r.URL.Query().Get("format")).To(Equal("html"))
				Expect(r.URL.Query().Get("comparisons")).To(Equal("false"))
				_, _ = w.Write([]byte("<!DOCTYPE html>"))
			}))
			defer server.Close()

			content, err := client.NewEstimatorClient(server.URL+"/", 0).Report(ctx, "60000", api.ReportFormatHTML, false)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(content)).To(Equal("<!DOCTYPE html>"))
		})
	})

	Describe("HealthCheck", func() {
		It("successfully returns nil when health check succeeds", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/health"))
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			Expect(client.NewEstimatorClient(server.URL, 0).HealthCheck(ctx)).To(Succeed())
		})

		It("returns error when status code is not 200", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			}))
			defer server.Close()

			Expect(client.NewEstimatorClient(server.URL, 0).HealthCheck(ctx)).ToNot(Succeed())
		})

		It("returns error when the server is unreachable", func() {
			Expect(client.NewEstimatorClient("http://127.0.0.1:1", time.Second).HealthCheck(ctx)).ToNot(Succeed())
		})
	})

	Describe("config", func() {
		It("parses and validates a config file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "client.yaml")
			Expect(os.WriteFile(path, []byte("service:\n  server: http://localhost:3443\n  timeout: 10s\n"), 0o600)).To(Succeed())

			config, err := client.ParseConfigFile(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(config.Service.Server).To(Equal("http://localhost:3443"))

			c, err := client.NewFromConfig(config)
			Expect(err).ToNot(HaveOccurred())
			Expect(c).ToNot(BeNil())
		})

		DescribeTable("rejects invalid configs",
			func(config client.Config) {
				Expect(config.Validate()).ToNot(Succeed())
			},
			Entry("no server", client.Config{}),
			Entry("no hostname", client.Config{Service: client.Service{Server: "/only/a/path"}}),
			Entry("bad timeout", client.Config{Service: client.Service{Server: "http://localhost", Timeout: "soon"}}),
		)
	})
})
