package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hancomics/prodboard/internal/domain/delivery"
)

type DeliveryHandler struct {
	svc *delivery.Service
}

func NewDeliveryHandler(svc *delivery.Service) *DeliveryHandler {
	return &DeliveryHandler{svc: svc}
}

// Worklist handles GET /delivery/worklist?weekday=
func (h *DeliveryHandler) Worklist(w http.ResponseWriter, r *http.Request) {
	weekday := delivery.DeliveryDay(r.URL.Query().Get("weekday"))
	views, err := h.svc.Worklist(r.Context(), weekday)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// ToggleEpisode handles POST /delivery/titles/{title}/toggle
func (h *DeliveryHandler) ToggleEpisode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlatformID string `json:"platform_id"`
		Episode    int    `json:"episode"`
		Delivered  bool   `json:"delivered"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	rec, err := h.svc.ToggleEpisode(r.Context(), chi.URLParam(r, "title"), req.PlatformID, req.Episode, req.Delivered)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// SetSchedule handles PUT /delivery/titles/{title}/schedule
func (h *DeliveryHandler) SetSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Episode int    `json:"episode"`
		Open    string `json:"open"`
		Due     string `json:"due"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	schedule, err := h.svc.SetScheduleDate(r.Context(), chi.URLParam(r, "title"), req.Episode, req.Open, req.Due)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

// SetDeliveryDay handles PUT /delivery/titles/{title}/day
func (h *DeliveryHandler) SetDeliveryDay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Day string `json:"day"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.svc.SetDeliveryDay(r.Context(), chi.URLParam(r, "title"), delivery.DeliveryDay(req.Day)); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Record handles GET /delivery/titles/{title}/platforms/{platformID}
func (h *DeliveryHandler) Record(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Record(r.Context(), chi.URLParam(r, "title"), chi.URLParam(r, "platformID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
