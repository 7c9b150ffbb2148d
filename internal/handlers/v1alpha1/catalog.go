package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/incomewatch/tax-estimator/internal/handlers/v1alpha1/mappers"
)

// (GET /api/v1/brackets)
func (h *ServiceHandler) ListBrackets(w http.ResponseWriter, r *http.Request) {
	_ = render.Render(w, r, BracketsReply{BracketList: mappers.ScheduleToApi(h.estimationSrv.Schedule())})
}

// (GET /api/v1/catalog)
func (h *ServiceHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	_ = render.Render(w, r, CatalogReply{Catalog: mappers.CatalogToApi(h.estimationSrv.Catalog())})
}
