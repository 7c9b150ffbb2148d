package v1alpha1_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/incomewatch/tax-estimator/api/v1alpha1"
)

func TestGetSwagger(t *testing.T) {
	swagger, err := api.GetSwagger()
	require.NoError(t, err)

	for _, path := range []string{"/health", "/api/v1/info", "/api/v1/brackets", "/api/v1/catalog", "/api/v1/estimate", "/api/v1/estimate/report"} {
		assert.NotNil(t, swagger.Paths.Find(path), "path %s", path)
	}
	estimate := swagger.Paths.Find("/api/v1/estimate")
	require.NotNil(t, estimate)
	assert.NotNil(t, estimate.Get)
	assert.NotNil(t, estimate.Post)
}

func TestIncomeInput_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantRaw string
		wantSet bool
	}{
		{name: "string", body: `{"income":"60000"}`, wantRaw: "60000", wantSet: true},
		{name: "grouped string", body: `{"income":"$1,000,000"}`, wantRaw: "$1,000,000", wantSet: true},
		{name: "number", body: `{"income":60000.5}`, wantRaw: "60000.5", wantSet: true},
		{name: "negative number", body: `{"income":-5}`, wantRaw: "-5", wantSet: true},
		{name: "null", body: `{"income":null}`},
		{name: "absent", body: `{}`},
		{name: "boolean", body: `{"income":true}`},
		{name: "object", body: `{"income":{"amount":5}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req api.EstimateRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.wantRaw, req.Income.Raw)
			assert.Equal(t, tt.wantSet, req.Income.Set)
		})
	}
}

func TestIncomeInput_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(api.EstimateRequest{Income: api.NewIncomeInput("42")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"income":"42"}`, string(data))

	data, err = json.Marshal(api.EstimateRequest{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"income":null}`, string(data))
}

func TestStringToReportFormat(t *testing.T) {
	tests := []struct {
		in   string
		want api.ReportFormat
		ok   bool
	}{
		{in: "", want: api.ReportFormatCSV, ok: true},
		{in: "csv", want: api.ReportFormatCSV, ok: true},
		{in: "HTML", want: api.ReportFormatHTML, ok: true},
		{in: " xlsx ", want: api.ReportFormatXLSX, ok: true},
		{in: "pdf", ok: false},
	}
	for _, tt := range tests {
		got, ok := api.StringToReportFormat(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
