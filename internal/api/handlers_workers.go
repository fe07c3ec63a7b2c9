package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hancomics/prodboard/internal/domain/worker"
)

type WorkerHandler struct {
	svc *worker.Service
}

func NewWorkerHandler(svc *worker.Service) *WorkerHandler {
	return &WorkerHandler{svc: svc}
}

// List handles GET /workers
func (h *WorkerHandler) List(w http.ResponseWriter, r *http.Request) {
	workers, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workers)
}

// Create handles POST /workers
func (h *WorkerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Team string `json:"team"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	wk, err := h.svc.Create(r.Context(), req.Name, req.Team)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, wk)
}

// Get handles GET /workers/{id}
func (h *WorkerHandler) Get(w http.ResponseWriter, r *http.Request) {
	wk, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wk)
}

// Update handles PUT /workers/{id}
func (h *WorkerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Team string `json:"team"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	wk := &worker.Worker{ID: chi.URLParam(r, "id"), Name: req.Name, Team: req.Team}
	if err := h.svc.Update(r.Context(), wk); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wk)
}

// Delete handles DELETE /workers/{id}
func (h *WorkerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
