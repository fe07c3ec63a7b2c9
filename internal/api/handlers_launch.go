package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hancomics/prodboard/internal/domain/launch"
)

type LaunchHandler struct {
	svc *launch.Service
}

func NewLaunchHandler(svc *launch.Service) *LaunchHandler {
	return &LaunchHandler{svc: svc}
}

// Platforms handles GET /launch/platforms
func (h *LaunchHandler) Platforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Platforms())
}

// Categories handles GET /launch/categories
func (h *LaunchHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, launch.Categories())
}

// Entries handles GET /launch/{category}
func (h *LaunchHandler) Entries(w http.ResponseWriter, r *http.Request) {
	category := launch.Category(chi.URLParam(r, "category"))
	entries, err := h.svc.Entries(r.Context(), category)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// SetStatus handles PUT /launch/{category}/status
func (h *LaunchHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title      string `json:"title"`
		ProjectID  string `json:"project_id"`
		PlatformID string `json:"platform_id"`
		Status     string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	err := h.svc.SetStatus(r.Context(), launch.SetStatusRequest{
		Category:   launch.Category(chi.URLParam(r, "category")),
		Title:      req.Title,
		ProjectID:  req.ProjectID,
		PlatformID: req.PlatformID,
		Status:     launch.Status(req.Status),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reconcile handles POST /launch/{category}/reconcile
func (h *LaunchHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title     string            `json:"title"`
		ProjectID string            `json:"project_id"`
		Screen    map[string]string `json:"screen"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	screen := make(map[string]launch.Status, len(req.Screen))
	for platform, status := range req.Screen {
		screen[platform] = launch.Status(status)
	}
	category := launch.Category(chi.URLParam(r, "category"))
	resolved, err := h.svc.ReconcileTitle(r.Context(), category, req.Title, req.ProjectID, screen)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resolved)
}

// RenameTitle handles POST /launch/{category}/rename
func (h *LaunchHandler) RenameTitle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldTitle string `json:"old_title"`
		NewTitle string `json:"new_title"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	category := launch.Category(chi.URLParam(r, "category"))
	if err := h.svc.RenameTitle(r.Context(), category, req.OldTitle, req.NewTitle); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LaunchedPlatforms handles GET /launch/titles/{title}/platforms
func (h *LaunchHandler) LaunchedPlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := h.svc.LaunchedPlatformsForTitle(r.Context(), chi.URLParam(r, "title"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, platforms)
}
