// internal/app/features/profilesetup/edit.go
package profilesetup

import (
	"context"
	"net/http"

	uierrors "github.com/divyamvijayvargia/capstone-portal/internal/app/features/errors"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/authz"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/timeouts"
	"github.com/divyamvijayvargia/capstone-portal/internal/domain/models"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /profile/edit                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeEdit renders the edit form for the signed-in user's role, prefilled
// with the stored profile.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "User not found.", "/")
		return
	}

	switch role {
	case models.RoleStudent:
		h.renderStudentForm(w, r, *user, "", true)
	case models.RoleFaculty:
		h.renderFacultyForm(w, r, *user, "", true)
	default:
		http.Redirect(w, r, "/profile/setup", http.StatusSeeOther)
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /profile/edit                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleEdit saves profile edits for the signed-in user's role.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/profile/edit")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	switch role {
	case models.RoleStudent:
		profile, errMsg := parseStudentForm(r)
		if errMsg != "" {
			h.renderStudentForm(w, r, studentFromProfile(profile, r), errMsg, true)
			return
		}
		if err := h.Users.UpdateStudentProfile(ctx, uid, profile); err != nil {
			h.ErrLog.LogServerError(w, r, "update student profile failed", err, "Unable to save your profile.", "/profile/edit")
			return
		}
		h.Log.Info("student profile updated", zap.String("user_id", uid.Hex()))
		http.Redirect(w, r, "/student", http.StatusSeeOther)

	case models.RoleFaculty:
		profile, errMsg := parseFacultyForm(r)
		if errMsg != "" {
			h.renderFacultyForm(w, r, facultyFromProfile(profile, r), errMsg, true)
			return
		}
		if err := h.Users.UpdateFacultyProfile(ctx, uid, profile); err != nil {
			h.ErrLog.LogServerError(w, r, "update faculty profile failed", err, "Unable to save your profile.", "/profile/edit")
			return
		}
		h.Log.Info("faculty profile updated", zap.String("user_id", uid.Hex()))
		http.Redirect(w, r, "/faculty", http.StatusSeeOther)

	default:
		http.Redirect(w, r, "/profile/setup", http.StatusSeeOther)
	}
}
