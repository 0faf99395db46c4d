// internal/app/features/facultydash/actions.go
package facultydash

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	uierrors "github.com/divyamvijayvargia/capstone-portal/internal/app/features/errors"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/policy/admission"
	applicationstore "github.com/divyamvijayvargia/capstone-portal/internal/app/store/applications"
	userstore "github.com/divyamvijayvargia/capstone-portal/internal/app/store/users"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/authz"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/timeouts"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/txn"
	"github.com/divyamvijayvargia/capstone-portal/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /faculty/accept/{appID}                                                 |
|                                                                              |
| Accepting cascades: the application flips to Accepted, the student profile   |
| is flagged as placed, and the student's other applications are deleted.      |
| All three writes run in one transaction so a concurrent accept by another    |
| faculty member cannot leave the student placed twice.                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	appID := chi.URLParam(r, "appID")
	if appID == "" {
		h.ErrLog.LogBadRequest(w, r, "missing application id", nil, "Unknown application.", "/faculty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	faculty, err := h.Users.GetFacultyByID(ctx, uid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Faculty profile not found.", "/")
		return
	}
	app, err := h.Applications.GetByID(ctx, appID)
	if err != nil {
		h.redirectWithError(w, r, "Application not found.")
		return
	}
	student, err := h.Users.GetStudentByID(ctx, app.StudentID)
	if err != nil {
		h.redirectWithError(w, r, "The applicant's account no longer exists.")
		return
	}
	counts, err := h.Applications.AcceptedCountsByFaculty(ctx, faculty.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "accepted counts failed", err, "A database error occurred.", "/faculty")
		return
	}

	if d := admission.CanAccept(app, student, faculty, counts); !d.Allowed {
		h.redirectWithError(w, r, d.Message)
		return
	}

	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if err := h.Applications.SetStatus(ctx, app.ID, models.StatusAccepted, app.Reason); err != nil {
			return err
		}
		if err := h.Users.MarkAccepted(ctx, app.StudentID, faculty.ID); err != nil {
			return err
		}
		_, err := h.Applications.DeleteOthersForStudent(ctx, app.StudentID, app.ID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, applicationstore.ErrNotPending):
			h.redirectWithError(w, r, "This application has already been decided.")
		case errors.Is(err, userstore.ErrAlreadyPlaced):
			h.redirectWithError(w, r, "This student has already been accepted elsewhere.")
		default:
			h.ErrLog.LogServerError(w, r, "accept cascade failed", err, "Unable to accept the application.", "/faculty")
		}
		return
	}

	h.Log.Info("application accepted",
		zap.String("application_id", app.ID),
		zap.String("faculty_id", faculty.ID.Hex()),
		zap.String("student_type", app.StudentType))

	http.Redirect(w, r, "/faculty?msg=accepted", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /faculty/reject/{appID}                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	appID := chi.URLParam(r, "appID")
	if appID == "" {
		h.ErrLog.LogBadRequest(w, r, "missing application id", nil, "Unknown application.", "/faculty")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/faculty")
		return
	}
	note := strings.TrimSpace(r.FormValue("note"))
	if len(note) > 500 {
		note = note[:500]
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	faculty, err := h.Users.GetFacultyByID(ctx, uid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Faculty profile not found.", "/")
		return
	}
	app, err := h.Applications.GetByID(ctx, appID)
	if err != nil {
		h.redirectWithError(w, r, "Application not found.")
		return
	}

	if d := admission.CanReject(app, faculty); !d.Allowed {
		h.redirectWithError(w, r, d.Message)
		return
	}

	if err := h.Applications.SetStatus(ctx, app.ID, models.StatusRejected, note); err != nil {
		if errors.Is(err, applicationstore.ErrNotPending) {
			h.redirectWithError(w, r, "This application has already been decided.")
			return
		}
		h.ErrLog.LogServerError(w, r, "reject failed", err, "Unable to reject the application.", "/faculty")
		return
	}

	h.Log.Info("application rejected",
		zap.String("application_id", app.ID),
		zap.String("faculty_id", faculty.ID.Hex()))

	http.Redirect(w, r, "/faculty?msg=rejected", http.StatusSeeOther)
}

func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/faculty?err="+url.QueryEscape(msg), http.StatusSeeOther)
}
