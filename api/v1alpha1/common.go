package v1alpha1

import "strings"

// StringToReportFormat maps a case-insensitive format name to a ReportFormat.
// An empty name selects csv.
func StringToReportFormat(s string) (ReportFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ReportFormatCSV):
		return ReportFormatCSV, true
	case string(ReportFormatHTML):
		return ReportFormatHTML, true
	case string(ReportFormatXLSX):
		return ReportFormatXLSX, true
	}
	return "", false
}

// ContentType returns the MIME type of a report in this format.
func (f ReportFormat) ContentType() string {
	switch f {
	case ReportFormatHTML:
		return "text/html; charset=utf-8"
	case ReportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}
