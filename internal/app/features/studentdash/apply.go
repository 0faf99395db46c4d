// internal/app/features/studentdash/apply.go
package studentdash

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	uierrors "github.com/divyamvijayvargia/capstone-portal/internal/app/features/errors"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/policy/admission"
	applicationstore "github.com/divyamvijayvargia/capstone-portal/internal/app/store/applications"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/authz"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/inputval"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type applyInput struct {
	Reason string `validate:"max=500" label:"Reason"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /student/apply/{facultyID}                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	facultyID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "facultyID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad faculty id", err, "Unknown faculty.", "/student")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/student")
		return
	}

	reason := strings.TrimSpace(r.FormValue("reason"))
	if result := inputval.Validate(applyInput{Reason: reason}); result.HasErrors() {
		h.redirectWithError(w, r, result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	student, err := h.Users.GetStudentByID(ctx, uid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Student profile not found.", "/")
		return
	}
	faculty, err := h.Users.GetFacultyByID(ctx, facultyID)
	if err != nil {
		h.redirectWithError(w, r, "Unknown faculty.")
		return
	}

	apps, err := h.Applications.ListByStudent(ctx, student.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list applications failed", err, "A database error occurred.", "/student")
		return
	}
	counts, err := h.Applications.AcceptedCountsByFaculty(ctx, faculty.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "accepted counts failed", err, "A database error occurred.", "/student")
		return
	}

	if d := admission.CanApply(student, faculty, apps, counts); !d.Allowed {
		h.redirectWithError(w, r, d.Message)
		return
	}

	if _, err := h.Applications.Create(ctx, student, faculty.ID, reason); err != nil {
		if errors.Is(err, applicationstore.ErrAlreadyApplied) {
			h.redirectWithError(w, r, "You have already applied to this faculty.")
			return
		}
		h.ErrLog.LogServerError(w, r, "create application failed", err, "Unable to submit your application.", "/student")
		return
	}

	h.Log.Info("application submitted",
		zap.String("student_id", student.ID.Hex()),
		zap.String("faculty_id", faculty.ID.Hex()))

	http.Redirect(w, r, "/student?msg=applied", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /student/withdraw/{facultyID}                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	facultyID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "facultyID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad faculty id", err, "Unknown faculty.", "/student")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	student, err := h.Users.GetStudentByID(ctx, uid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Student profile not found.", "/")
		return
	}
	app, err := h.Applications.Get(ctx, student.ID, facultyID)
	if err != nil {
		h.redirectWithError(w, r, "No application to withdraw.")
		return
	}

	if d := admission.CanWithdraw(app, student); !d.Allowed {
		h.redirectWithError(w, r, d.Message)
		return
	}

	if _, err := h.Applications.Withdraw(ctx, student.ID, facultyID); err != nil {
		h.ErrLog.LogServerError(w, r, "withdraw application failed", err, "Unable to withdraw.", "/student")
		return
	}

	h.Log.Info("application withdrawn",
		zap.String("student_id", student.ID.Hex()),
		zap.String("faculty_id", facultyID.Hex()))

	back := "/student"
	if r.FormValue("from") == "applications" {
		back = "/student/applications"
	}
	http.Redirect(w, r, back+"?msg=withdrawn", http.StatusSeeOther)
}

func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/student?err="+url.QueryEscape(msg), http.StatusSeeOther)
}
