package promo

import (
	"encoding/json"
	"net/http"

	httputil "bookit/pkg/http"
	"bookit/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// ValidateRequest is the payload for pre-checkout promo validation. The
// email lets the server run the one-use-per-customer check up front so
// the storefront can surface the rejection before payment.
type ValidateRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
	Email    string  `json:"email,omitempty"`
}

type PromoHandler struct {
	service PromoService
	log     *logger.Logger
}

func NewPromoHandler(service PromoService, log *logger.Logger) *PromoHandler {
	return &PromoHandler{
		service: service,
		log:     log,
	}
}

func (h *PromoHandler) Validate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.service.Validate(r.Context(), req.Code, req.Subtotal, req.Email)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	// Invalid codes are a normal outcome here, not an error status.
	httputil.WriteSuccess(w, result)
}

func (h *PromoHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/promo/validate", h.Validate)
}
