package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	api "github.com/incomewatch/tax-estimator/api/v1alpha1"
	"github.com/incomewatch/tax-estimator/internal/handlers/validator"
	"github.com/incomewatch/tax-estimator/internal/service"
	"github.com/incomewatch/tax-estimator/pkg/requestid"
)

type ServiceHandler struct {
	estimationSrv *service.EstimationService
	reportSrv     *service.ReportService
	validator     *validator.Validator
	logger        *zap.SugaredLogger
}

func NewServiceHandler(estimationService *service.EstimationService, reportService *service.ReportService) *ServiceHandler {
	v := validator.NewValidator()
	v.Register(validator.NewReportValidationRules()...)

	return &ServiceHandler{
		estimationSrv: estimationService,
		reportSrv:     reportService,
		validator:     v,
		logger:        zap.S().Named("handler"),
	}
}

// RegisterApi mounts every route of the v1alpha1 API on router.
func RegisterApi(router chi.Router, h *ServiceHandler) {
	router.Get("/health", h.Health)
	router.Get("/api/v1/info", h.GetInfo)
	router.Get("/api/v1/brackets", h.ListBrackets)
	router.Get("/api/v1/catalog", h.GetCatalog)
	router.Get("/api/v1/estimate", h.GetEstimate)
	router.Post("/api/v1/estimate", h.CreateEstimate)
	router.Get("/api/v1/estimate/report", h.GetEstimateReport)
}

type EstimateReply struct {
	api.Estimate
}

type BracketsReply struct {
	api.BracketList
}

type CatalogReply struct {
	api.Catalog
}

type InfoReply struct {
	api.Info
}

type ErrorReply struct {
	api.Error
	status int
}

func newErrorReply(r *http.Request, status int, message string) ErrorReply {
	return ErrorReply{
		Error:  api.Error{Message: message, RequestId: requestid.FromContextPtr(r.Context())},
		status: status,
	}
}

func (e EstimateReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (b BracketsReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (c CatalogReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (i InfoReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (e ErrorReply) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.status)
	return nil
}
