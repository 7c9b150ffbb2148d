package v1alpha1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	api "github.com/incomewatch/tax-estimator/api/v1alpha1"
	"github.com/incomewatch/tax-estimator/internal/handlers/v1alpha1/mappers"
	"github.com/incomewatch/tax-estimator/internal/service"
	"github.com/incomewatch/tax-estimator/pkg/requestid"
)

type reportForm struct {
	Format string `validate:"report_format"`
}

// (GET /api/v1/estimate)
func (h *ServiceHandler) GetEstimate(w http.ResponseWriter, r *http.Request) {
	h.estimate(w, r, r.URL.Query().Get("income"))
}

// (POST /api/v1/estimate)
func (h *ServiceHandler) CreateEstimate(w http.ResponseWriter, r *http.Request) {
	var body api.EstimateRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		message := fmt.Sprintf("invalid request body: %v", err)
		if errors.Is(err, io.EOF) {
			message = "empty body"
		}
		h.logger.Debugw("rejected estimate request", "error", err, "request_id", requestid.FromRequest(r))
		_ = render.Render(w, r, newErrorReply(r, http.StatusBadRequest, message))
		return
	}

	h.estimate(w, r, body.Income.String())
}

func (h *ServiceHandler) estimate(w http.ResponseWriter, r *http.Request, rawIncome string) {
	result, err := h.estimationSrv.Estimate(r.Context(), rawIncome)
	if err != nil {
		h.renderServiceError(w, r, err, "failed to estimate income tax")
		return
	}

	_ = render.Render(w, r, EstimateReply{Estimate: mappers.EstimateToApi(result)})
}

// (GET /api/v1/estimate/report)
func (h *ServiceHandler) GetEstimateReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	form := reportForm{Format: query.Get("format")}
	if err := h.validator.Struct(form); err != nil {
		_ = render.Render(w, r, newErrorReply(r, http.StatusBadRequest, err.Error()))
		return
	}
	reportFormat, _ := api.StringToReportFormat(form.Format)

	includeComparisons := true
	if raw := query.Get("comparisons"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			_ = render.Render(w, r, newErrorReply(r, http.StatusBadRequest, fmt.Sprintf("comparisons %q is not a boolean", raw)))
			return
		}
		includeComparisons = v
	}

	result, err := h.estimationSrv.Estimate(r.Context(), query.Get("income"))
	if err != nil {
		h.renderServiceError(w, r, err, "failed to estimate income tax")
		return
	}

	content, err := h.reportSrv.GenerateReport(result, service.ReportOptions{
		Format:             service.ReportFormat(reportFormat),
		IncludeComparisons: includeComparisons,
	})
	if err != nil {
		h.renderServiceError(w, r, err, "failed to generate report")
		return
	}

	w.Header().Set("Content-Type", reportFormat.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ReportFilename(result.Income, reportFormat)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// ReportFilename names a downloaded report, e.g. tax-estimate-60000.csv.
func ReportFilename(income float64, format api.ReportFormat) string {
	return fmt.Sprintf("tax-estimate-%.0f.%s", income, format)
}

func (h *ServiceHandler) renderServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	var unsupported *service.ErrUnsupportedReportFormat
	if errors.As(err, &unsupported) {
		_ = render.Render(w, r, newErrorReply(r, http.StatusBadRequest, err.Error()))
		return
	}

	h.logger.Errorw(message, "error", err, "request_id", requestid.FromRequest(r))
	_ = render.Render(w, r, newErrorReply(r, http.StatusInternalServerError, message))
}
