package types

type ReportRenderer interface {
	Render(data *ReportData) ([]byte, error)
	SupportedFormat() ReportFormat
}

type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatHTML ReportFormat = "html"
	ReportFormatXLSX ReportFormat = "xlsx"
)

type ReportOptions struct {
	Format ReportFormat
	// IncludeComparisons adds the reference-cost comparison and the donation directory.
	IncludeComparisons bool
}

type ReportData struct {
	Summary       SummaryMetrics
	Brackets      []BracketDetail
	Purchases     []PurchaseDetail
	Organizations []OrganizationDetail
	Options       ReportOptions
	Timestamps    ReportTimestamps
}

type SummaryMetrics struct {
	Income        float64
	FederalTax    float64
	Contribution  float64
	MarginalRate  float64
	EffectiveRate float64
	Reaction      string
}

type BracketDetail struct {
	Rate    float64
	Floor   float64
	Cap     float64
	Taxable float64
	Tax     float64
}

type PurchaseDetail struct {
	Name         string
	Manufacturer string
	Cost         float64
	Units        float64
}

type OrganizationDetail struct {
	Name    string
	Website string
}

type ReportTimestamps struct {
	Generated     string
	GeneratedTime string
}
