// Package api exposes the coffee machine service over HTTP. Handlers
// are thin: decode, call the service, map errors. Domain validation
// failures become 400s with the error message; storage failures become
// 500s so clients can tell bad input from a broken environment.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"brewd/internal/machine"
	"brewd/internal/service"
)

type Handler struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewHandler builds the route table. Each recipe gets its own POST
// route (underscores become hyphens in the path), so adding a drink is
// a recipe-table change only.
func NewHandler(svc *service.Service, logger *zap.Logger) http.Handler {
	h := &Handler{svc: svc, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleStatus)
	mux.HandleFunc("GET /status", h.handleStatus)
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.HandleFunc("GET /recipes", h.handleRecipes)
	for name := range machine.Recipes() {
		route := strings.ReplaceAll(name, "_", "-")
		mux.HandleFunc("POST /coffee/"+route, h.brewHandler(name))
	}
	mux.HandleFunc("POST /containers/water/fill", h.handleFillWater)
	mux.HandleFunc("POST /containers/coffee/fill", h.handleFillCoffee)

	return mux
}

type statusResponse struct {
	Status machine.Snapshot `json:"status"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := h.svc.Status(r.Context())
	h.writeJSON(w, http.StatusOK, statusResponse{Status: snap})
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleRecipes(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, machine.Recipes())
}

func (h *Handler) brewHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.svc.Brew(r.Context(), name)
		if err != nil {
			h.writeMachineError(w, err)
			return
		}
		brewsTotal.WithLabelValues(name).Inc()
		h.writeJSON(w, http.StatusOK, res)
	}
}

func (h *Handler) handleFillWater(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AmountML *int `json:"amount_ml"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AmountML == nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON payload: amount_ml required")
		return
	}
	res, err := h.svc.FillWater(r.Context(), *req.AmountML)
	if err != nil {
		h.writeMachineError(w, err)
		return
	}
	fillsTotal.WithLabelValues("water").Inc()
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleFillCoffee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AmountG *int `json:"amount_g"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AmountG == nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON payload: amount_g required")
		return
	}
	res, err := h.svc.FillCoffee(r.Context(), *req.AmountG)
	if err != nil {
		h.writeMachineError(w, err)
		return
	}
	fillsTotal.WithLabelValues("coffee").Inc()
	h.writeJSON(w, http.StatusOK, res)
}

// writeMachineError maps a service failure to a status code: domain
// validation errors are the client's fault, anything else (storage) is
// ours.
func (h *Handler) writeMachineError(w http.ResponseWriter, err error) {
	if machine.IsDomain(err) {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Error("internal error", zap.Error(err))
	h.writeError(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	class := "client"
	if status >= 500 {
		class = "server"
	}
	requestErrors.WithLabelValues(class).Inc()
	h.writeJSON(w, status, map[string]string{"error": msg})
}
