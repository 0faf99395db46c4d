package home

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/authz"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the landing page.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRoot renders the public landing page. Signed-in users are sent
// straight to the page for their role.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	role, _, _, signedIn := authz.UserCtx(r)
	if signedIn {
		switch role {
		case "student":
			http.Redirect(w, r, "/student", http.StatusSeeOther)
			return
		case "faculty":
			http.Redirect(w, r, "/faculty", http.StatusSeeOther)
			return
		default:
			http.Redirect(w, r, "/profile/setup", http.StatusSeeOther)
			return
		}
	}

	data := struct {
		viewdata.BaseVM
	}{
		BaseVM: viewdata.NewBaseVM(r, "Welcome", "/"),
	}
	templates.Render(w, r, "home", data)
}
