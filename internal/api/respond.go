package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hancomics/prodboard/internal/domain/delivery"
	"github.com/hancomics/prodboard/internal/domain/launch"
	"github.com/hancomics/prodboard/internal/domain/project"
	"github.com/hancomics/prodboard/internal/domain/task"
	"github.com/hancomics/prodboard/internal/domain/worker"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeDomainError maps domain sentinel errors onto HTTP statuses. Unmapped
// errors are internal failures of the attempted action, surfaced as such.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, project.ErrProcessNotFound),
		errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, worker.ErrWorkerNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, project.ErrEpisodeFloor),
		errors.Is(err, project.ErrEpisodeOutOfRange),
		errors.Is(err, launch.ErrInvalidInput),
		errors.Is(err, launch.ErrUnknownCategory),
		errors.Is(err, launch.ErrUnknownPlatform),
		errors.Is(err, launch.ErrInvalidStatus),
		errors.Is(err, delivery.ErrInvalidInput),
		errors.Is(err, delivery.ErrInvalidDay),
		errors.Is(err, task.ErrInvalidInput),
		errors.Is(err, worker.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
