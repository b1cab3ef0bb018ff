package wallet

import (
	"encoding/json"
	"net/http"

	httputil "bookit/pkg/http"
	"bookit/pkg/logger"
	"bookit/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type WalletHandler struct {
	service WalletService
	log     *logger.Logger
}

func NewWalletHandler(service WalletService, log *logger.Logger) *WalletHandler {
	return &WalletHandler{
		service: service,
		log:     log,
	}
}

func (h *WalletHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.service.Register(r.Context(), &input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, user)
}

func (h *WalletHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.service.Authenticate(r.Context(), &input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, user)
}

func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	balance, err := h.service.Balance(r.Context(), ps.ByName("email"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, map[string]any{"balance": balance})
}

func (h *WalletHandler) TopUp(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.TopUpInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	balance, err := h.service.TopUp(r.Context(), &input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, map[string]any{"balance": balance})
}

func (h *WalletHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/users", h.Register)
	router.POST("/api/v1/users/login", h.Login)
	router.GET("/api/v1/wallet/:email", h.Balance)
	router.POST("/api/v1/wallet/topup", h.TopUp)
}
