package requests

import (
	"encoding/json"
	"net/http"

	httputil "bookit/pkg/http"
	"bookit/pkg/logger"
	"bookit/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type statusUpdate struct {
	Status string `json:"status"`
}

type RequestHandler struct {
	service RequestService
	log     *logger.Logger
}

func NewRequestHandler(service RequestService, log *logger.Logger) *RequestHandler {
	return &RequestHandler{
		service: service,
		log:     log,
	}
}

func (h *RequestHandler) CreateCallback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	created, err := h.service.CreateCallback(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, created)
}

func (h *RequestHandler) ListCallbacks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	list, total, err := h.service.ListCallbacks(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, list, total, limit, offset)
}

func (h *RequestHandler) UpdateCallbackStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update statusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	updated, err := h.service.UpdateCallbackStatus(r.Context(), ps.ByName("id"), update.Status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, updated)
}

func (h *RequestHandler) DeleteCallback(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteCallback(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RequestHandler) CreateMessage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	created, err := h.service.CreateMessage(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, created)
}

func (h *RequestHandler) ListMessages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	list, total, err := h.service.ListMessages(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, list, total, limit, offset)
}

func (h *RequestHandler) UpdateMessageStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update statusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	updated, err := h.service.UpdateMessageStatus(r.Context(), ps.ByName("id"), update.Status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, updated)
}

func (h *RequestHandler) DeleteMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteMessage(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RequestHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/requests/callback", h.CreateCallback)
	router.GET("/api/v1/requests/callback", h.ListCallbacks)
	router.PATCH("/api/v1/requests/callback/:id", h.UpdateCallbackStatus)
	router.DELETE("/api/v1/requests/callback/:id", h.DeleteCallback)

	router.POST("/api/v1/requests/message", h.CreateMessage)
	router.GET("/api/v1/requests/message", h.ListMessages)
	router.PATCH("/api/v1/requests/message/:id", h.UpdateMessageStatus)
	router.DELETE("/api/v1/requests/message/:id", h.DeleteMessage)
}
