package handler

import (
	"encoding/json"
	"net/http"

	"bookit/internal/bookings/service"
	httputil "bookit/pkg/http"
	"bookit/pkg/logger"
	"bookit/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(svc service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: svc,
		log:     log,
	}
}

func (h *BookingHandler) Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.CheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.service.Checkout(r.Context(), &input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if result.Edited {
		httputil.WriteSuccess(w, result)
		return
	}
	httputil.WriteCreated(w, result)
}

// Edit reruns checkout against an existing booking. The path id wins
// over any booking_id in the body.
func (h *BookingHandler) Edit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input model.CheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}
	input.BookingID = ps.ByName("id")

	result, err := h.service.Checkout(r.Context(), &input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, result)
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

func (h *BookingHandler) ListByEmail(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := r.URL.Query().Get("email")

	bookings, err := h.service.GetByEmail(r.Context(), email)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, bookings)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.Cancel(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/checkout", h.Checkout)
	router.GET("/api/v1/bookings", h.ListByEmail)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.PUT("/api/v1/bookings/id/:id", h.Edit)
	router.DELETE("/api/v1/bookings/id/:id", h.Cancel)
}
