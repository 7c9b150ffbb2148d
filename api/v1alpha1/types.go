package v1alpha1

import (
	"bytes"
	"encoding/json"
	"strings"
)

// IncomeInput is the income as the client sent it. JSON strings and numbers are kept
// as raw text; null and any other JSON value leave it unset.
type IncomeInput struct {
	Raw string
	Set bool
}

func (i *IncomeInput) UnmarshalJSON(data []byte) error {
	*i = IncomeInput{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = IncomeInput{Raw: s, Set: true}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*i = IncomeInput{Raw: string(data), Set: true}
	}
	// null, booleans, objects and arrays carry no income.
	return nil
}

func (i IncomeInput) MarshalJSON() ([]byte, error) {
	if !i.Set {
		return []byte("null"), nil
	}
	return json.Marshal(i.Raw)
}

func (i IncomeInput) String() string {
	return strings.TrimSpace(i.Raw)
}

// NewIncomeInput wraps raw text as a set income value.
func NewIncomeInput(raw string) IncomeInput {
	return IncomeInput{Raw: raw, Set: true}
}

// EstimateRequest is the body of POST /api/v1/estimate.
type EstimateRequest struct {
	Income IncomeInput `json:"income"`
}

// Estimate is the result of an estimation.
type Estimate struct {
	Income                float64        `json:"income"`
	FormattedIncome       string         `json:"formattedIncome,omitempty"`
	FederalTax            float64        `json:"federalTax"`
	FormattedFederalTax   string         `json:"formattedFederalTax,omitempty"`
	Contribution          float64        `json:"contribution"`
	FormattedContribution string         `json:"formattedContribution,omitempty"`
	MarginalRate          float64        `json:"marginalRate"`
	EffectiveRate         float64        `json:"effectiveRate"`
	Reaction              string         `json:"reaction"`
	Breakdown             []BracketSlice `json:"breakdown"`
	Purchases             []Purchase     `json:"purchases"`
	Organizations         []Organization `json:"organizations"`
}

// BracketSlice is the part of the income taxed in one bracket. Cap is nil for the top bracket.
type BracketSlice struct {
	Rate    float64  `json:"rate"`
	Floor   float64  `json:"floor"`
	Cap     *float64 `json:"cap,omitempty"`
	Taxable float64  `json:"taxable"`
	Tax     float64  `json:"tax"`
}

// Bracket is one row of the schedule. Cap is nil for the unbounded top bracket.
type Bracket struct {
	Rate float64  `json:"rate"`
	Cap  *float64 `json:"cap,omitempty"`
}

// BracketList has the same shape as a brackets file.
type BracketList struct {
	Brackets []Bracket `json:"brackets"`
}

type Purchase struct {
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	Cost         float64 `json:"cost"`
	Units        float64 `json:"units"`
}

type CatalogItem struct {
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	Cost         float64 `json:"cost"`
}

type Organization struct {
	Name    string `json:"name"`
	Website string `json:"website"`
}

type Catalog struct {
	Items         []CatalogItem  `json:"items"`
	Organizations []Organization `json:"organizations"`
}

type Info struct {
	GitCommit   string `json:"gitCommit"`
	VersionName string `json:"versionName"`
}

type Error struct {
	Message   string  `json:"message"`
	RequestId *string `json:"requestId,omitempty"`
}

type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatHTML ReportFormat = "html"
	ReportFormatXLSX ReportFormat = "xlsx"
)
