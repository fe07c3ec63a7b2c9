package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hancomics/prodboard/internal/domain/project"
)

type ProjectHandler struct {
	svc *project.Service
}

func NewProjectHandler(svc *project.Service) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// List handles GET /projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// Create handles POST /projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title          string `json:"title"`
		Type           string `json:"type"`
		EpisodeCount   int    `json:"episode_count"`
		StartEpisode   int    `json:"start_episode"`
		LaunchCategory string `json:"launch_category"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	proj, err := h.svc.Create(r.Context(), project.CreateRequest{
		Title:          req.Title,
		Type:           project.ProjectType(req.Type),
		EpisodeCount:   req.EpisodeCount,
		StartEpisode:   req.StartEpisode,
		LaunchCategory: req.LaunchCategory,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, proj)
}

// Get handles GET /projects/{id}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	proj, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

// Delete handles DELETE /projects/{id}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Rename handles PATCH /projects/{id}/title
func (h *ProjectHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	proj, err := h.svc.Rename(r.Context(), chi.URLParam(r, "id"), req.Title)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

// SetLifecycle handles PATCH /projects/{id}/lifecycle
func (h *ProjectHandler) SetLifecycle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	proj, err := h.svc.SetLifecycle(r.Context(), chi.URLParam(r, "id"), project.Lifecycle(req.Status))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

type cellRequest struct {
	ProcessID int    `json:"process_id"`
	Episode   int    `json:"episode"`
	Status    string `json:"status"`
	Text      string `json:"text"`
}

// SetCell handles PUT /projects/{id}/cells
func (h *ProjectHandler) SetCell(w http.ResponseWriter, r *http.Request) {
	var req cellRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	cell := project.CellState{Status: project.CellStatus(req.Status), Text: req.Text}
	proj, err := h.svc.SetCell(r.Context(), chi.URLParam(r, "id"), req.ProcessID, req.Episode, cell)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

// AdvanceCell handles POST /projects/{id}/cells/advance
func (h *ProjectHandler) AdvanceCell(w http.ResponseWriter, r *http.Request) {
	var req cellRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	proj, err := h.svc.AdvanceCell(r.Context(), chi.URLParam(r, "id"), req.ProcessID, req.Episode)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

// ToggleCell handles POST /projects/{id}/cells/toggle
func (h *ProjectHandler) ToggleCell(w http.ResponseWriter, r *http.Request) {
	var req cellRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	proj, err := h.svc.ToggleCell(r.Context(), chi.URLParam(r, "id"), req.ProcessID, req.Episode)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

// SetCellText handles PUT /projects/{id}/cells/text
func (h *ProjectHandler) SetCellText(w http.ResponseWriter, r *http.Request) {
	var req cellRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	proj, err := h.svc.SetCellText(r.Context(), chi.URLParam(r, "id"), req.ProcessID, req.Episode, req.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

// AddEpisode handles POST /projects/{id}/episodes
func (h *ProjectHandler) AddEpisode(w http.ResponseWriter, r *http.Request) {
	proj, err := h.svc.AddEpisode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

// RemoveLastEpisode handles DELETE /projects/{id}/episodes/last
func (h *ProjectHandler) RemoveLastEpisode(w http.ResponseWriter, r *http.Request) {
	proj, err := h.svc.RemoveLastEpisode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

// SetEpisodeComplete handles PUT /projects/{id}/episodes/{episode}/complete
func (h *ProjectHandler) SetEpisodeComplete(w http.ResponseWriter, r *http.Request) {
	episode, err := strconv.Atoi(chi.URLParam(r, "episode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid episode")
		return
	}
	var req struct {
		Checked bool `json:"checked"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	proj, err := h.svc.SetEpisodeComplete(r.Context(), chi.URLParam(r, "id"), episode, req.Checked)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

// EpisodeComplete handles GET /projects/{id}/episodes/{episode}/complete
func (h *ProjectHandler) EpisodeComplete(w http.ResponseWriter, r *http.Request) {
	episode, err := strconv.Atoi(chi.URLParam(r, "episode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid episode")
		return
	}
	complete, err := h.svc.IsEpisodeFullyComplete(r.Context(), chi.URLParam(r, "id"), episode)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"complete": complete})
}

// HideEpisodes handles POST /projects/{id}/episodes/hide
func (h *ProjectHandler) HideEpisodes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	proj, err := h.svc.HideEpisodes(r.Context(), chi.URLParam(r, "id"), req.From, req.To)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

// ShowAllEpisodes handles POST /projects/{id}/episodes/show-all
func (h *ProjectHandler) ShowAllEpisodes(w http.ResponseWriter, r *http.Request) {
	proj, err := h.svc.ShowAllEpisodes(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

// AddProcess handles POST /projects/{id}/processes
func (h *ProjectHandler) AddProcess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	proj, err := h.svc.AddProcess(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, proj)
}

// UpdateProcess handles PATCH /projects/{id}/processes/{processID}
func (h *ProjectHandler) UpdateProcess(w http.ResponseWriter, r *http.Request) {
	processID, err := strconv.Atoi(chi.URLParam(r, "processID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid process id")
		return
	}
	var req struct {
		Name     *string `json:"name"`
		Assignee *string `json:"assignee"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	var proj *project.Project
	if req.Name != nil {
		proj, err = h.svc.RenameProcess(r.Context(), id, processID, *req.Name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if req.Assignee != nil {
		proj, err = h.svc.AssignProcess(r.Context(), id, processID, *req.Assignee)
		if err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if proj == nil {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

// RemoveProcess handles DELETE /projects/{id}/processes/{processID}
func (h *ProjectHandler) RemoveProcess(w http.ResponseWriter, r *http.Request) {
	processID, err := strconv.Atoi(chi.URLParam(r, "processID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid process id")
		return
	}
	proj, err := h.svc.RemoveProcess(r.Context(), chi.URLParam(r, "id"), processID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}
