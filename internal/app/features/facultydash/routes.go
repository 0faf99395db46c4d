// internal/app/features/facultydash/routes.go
package facultydash

import (
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the faculty dashboard under /faculty.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("faculty"))

		pr.Get("/", h.ServeList)
		pr.Post("/accept/{appID}", h.HandleAccept)
		pr.Post("/reject/{appID}", h.HandleReject)
	})

	return r
}
