// internal/app/features/profilesetup/routes.go
package profilesetup

import (
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts profile setup and edit under /profile.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		// First-login setup for role-unset accounts.
		pr.Get("/setup", h.ServeSetup)
		pr.Get("/setup/student", h.ServeSetupStudent)
		pr.Post("/setup/student", h.HandleSetupStudent)
		pr.Get("/setup/faculty", h.ServeSetupFaculty)
		pr.Post("/setup/faculty", h.HandleSetupFaculty)

		// Profile edits after setup. The role-specific paths resolve to the
		// same handlers, which dispatch on the session role.
		pr.Get("/edit", h.ServeEdit)
		pr.Post("/edit", h.HandleEdit)
		pr.Get("/student", h.ServeEdit)
		pr.Post("/student", h.HandleEdit)
		pr.Get("/faculty", h.ServeEdit)
		pr.Post("/faculty", h.HandleEdit)
	})

	return r
}
