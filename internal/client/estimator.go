package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	api "github.com/incomewatch/tax-estimator/api/v1alpha1"
	"github.com/incomewatch/tax-estimator/pkg/requestid"
)

// EstimatorClient is an HTTP client for the tax-estimator API
type EstimatorClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewEstimatorClient(baseURL string, timeout time.Duration) *EstimatorClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &EstimatorClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Estimate posts income as the client received it; the server applies the same
// parse-with-fallback as a local estimate.
func (c *EstimatorClient) Estimate(ctx context.Context, income string) (*api.Estimate, error) {
	body, err := json.Marshal(api.EstimateRequest{Income: api.NewIncomeInput(income)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var estimate api.Estimate
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/estimate", body, &estimate); err != nil {
		return nil, err
	}
	return &estimate, nil
}

func (c *EstimatorClient) Brackets(ctx context.Context) (*api.BracketList, error) {
	var brackets api.BracketList
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/brackets", nil, &brackets); err != nil {
		return nil, err
	}
	return &brackets, nil
}

func (c *EstimatorClient) Catalog(ctx context.Context) (*api.Catalog, error) {
	var catalog api.Catalog
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/catalog", nil, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (c *EstimatorClient) Info(ctx context.Context) (*api.Info, error) {
	var info api.Info
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Report downloads a rendered report.
func (c *EstimatorClient) Report(ctx context.Context, income string, format api.ReportFormat, comparisons bool) ([]byte, error) {
	query := url.Values{}
	query.Set("income", income)
	query.Set("format", string(format))
	query.Set("comparisons", strconv.FormatBool(comparisons))

	return c.do(ctx, http.MethodGet, "/api/v1/estimate/report?"+query.Encode(), nil)
}

func (c *EstimatorClient) HealthCheck(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodGet, "/health", nil); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

func (c *EstimatorClient) doJSON(ctx context.Context, method, path string, body []byte, out any) error {
	bodyBytes, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *EstimatorClient) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set(requestid.Header, requestid.Generate())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call tax-estimator service: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr api.Error
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("tax-estimator service returned status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("tax-estimator service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	return bodyBytes, nil
}
