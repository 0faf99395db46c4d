// internal/app/features/login/handler.go
package login

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/auth"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler serves the sign-in page. Authentication itself is delegated to
// Google; the actual OAuth flow lives in the authgoogle feature.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
	}
}

type loginPageData struct {
	viewdata.BaseVM
	ReturnURL string
	Error     string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	// Already signed in? Nothing to do here.
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "login", loginPageData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL: query.Get(r, "return"),
		Error:     query.Get(r, "error"),
	})
}
