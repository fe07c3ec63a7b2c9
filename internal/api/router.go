package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Projects *ProjectHandler
	Launch   *LaunchHandler
	Delivery *DeliveryHandler
	Tasks    *TaskHandler
	Workers  *WorkerHandler
	Activity *ActivityHandler
}

// NewRouter builds the HTTP route tree. An empty authToken disables the
// bearer gate.
func NewRouter(h Handlers, authToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	r.Get("/health", Health)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(authToken))

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.Projects.List)
			r.Post("/", h.Projects.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Projects.Get)
				r.Delete("/", h.Projects.Delete)
				r.Patch("/title", h.Projects.Rename)
				r.Patch("/lifecycle", h.Projects.SetLifecycle)

				r.Put("/cells", h.Projects.SetCell)
				r.Post("/cells/advance", h.Projects.AdvanceCell)
				r.Post("/cells/toggle", h.Projects.ToggleCell)
				r.Put("/cells/text", h.Projects.SetCellText)

				r.Post("/episodes", h.Projects.AddEpisode)
				r.Delete("/episodes/last", h.Projects.RemoveLastEpisode)
				r.Get("/episodes/{episode}/complete", h.Projects.EpisodeComplete)
				r.Put("/episodes/{episode}/complete", h.Projects.SetEpisodeComplete)
				r.Post("/episodes/hide", h.Projects.HideEpisodes)
				r.Post("/episodes/show-all", h.Projects.ShowAllEpisodes)

				r.Post("/processes", h.Projects.AddProcess)
				r.Patch("/processes/{processID}", h.Projects.UpdateProcess)
				r.Delete("/processes/{processID}", h.Projects.RemoveProcess)
			})
		})

		r.Route("/launch", func(r chi.Router) {
			r.Get("/platforms", h.Launch.Platforms)
			r.Get("/categories", h.Launch.Categories)
			r.Get("/titles/{title}/platforms", h.Launch.LaunchedPlatforms)
			r.Route("/{category}", func(r chi.Router) {
				r.Get("/", h.Launch.Entries)
				r.Put("/status", h.Launch.SetStatus)
				r.Post("/reconcile", h.Launch.Reconcile)
				r.Post("/rename", h.Launch.RenameTitle)
			})
		})

		r.Route("/delivery", func(r chi.Router) {
			r.Get("/worklist", h.Delivery.Worklist)
			r.Route("/titles/{title}", func(r chi.Router) {
				r.Post("/toggle", h.Delivery.ToggleEpisode)
				r.Put("/schedule", h.Delivery.SetSchedule)
				r.Put("/day", h.Delivery.SetDeliveryDay)
				r.Get("/platforms/{platformID}", h.Delivery.Record)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.Tasks.List)
			r.Post("/", h.Tasks.Create)
			r.Post("/{id}/toggle", h.Tasks.Toggle)
			r.Delete("/{id}", h.Tasks.Delete)
		})

		r.Route("/workers", func(r chi.Router) {
			r.Get("/", h.Workers.List)
			r.Post("/", h.Workers.Create)
			r.Get("/{id}", h.Workers.Get)
			r.Put("/{id}", h.Workers.Update)
			r.Delete("/{id}", h.Workers.Delete)
		})

		r.Get("/activity", h.Activity.List)
	})

	return r
}
