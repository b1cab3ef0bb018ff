package catalog

import (
	"net/http"

	httputil "bookit/pkg/http"
	"bookit/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type CatalogHandler struct {
	service CatalogService
	log     *logger.Logger
}

func NewCatalogHandler(service CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log,
	}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	summaries, err := h.service.ListExperiences(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, summaries)
}

func (h *CatalogHandler) GetBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	detail, err := h.service.GetBySlug(r.Context(), ps.ByName("slug"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, detail)
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/experiences", h.List)
	router.GET("/api/v1/experiences/slug/:slug", h.GetBySlug)
}
