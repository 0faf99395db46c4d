// internal/app/features/studentdash/routes.go
package studentdash

import (
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the student dashboard under /student.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("student"))

		pr.Get("/", h.ServeBrowse)
		pr.Get("/applications", h.ServeApplications)
		pr.Post("/apply/{facultyID}", h.HandleApply)
		pr.Post("/withdraw/{facultyID}", h.HandleWithdraw)
	})

	return r
}
