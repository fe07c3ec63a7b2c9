package api

import (
	"net/http"
	"strconv"

	"github.com/hancomics/prodboard/internal/domain/activity"
)

type ActivityHandler struct {
	svc *activity.Service
}

func NewActivityHandler(svc *activity.Service) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

// List handles GET /activity?project_id=&title=&type=&limit=&offset=
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	var opts activity.ListActivityOptions
	q := r.URL.Query()
	if v := q.Get("project_id"); v != "" {
		opts.ProjectID = &v
	}
	if v := q.Get("title"); v != "" {
		opts.Title = &v
	}
	if v := q.Get("type"); v != "" {
		t := activity.ActivityType(v)
		opts.ActivityType = &t
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		opts.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		opts.Offset = n
	}

	entries, err := h.svc.GetRecentActivity(r.Context(), opts)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
