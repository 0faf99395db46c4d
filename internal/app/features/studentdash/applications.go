// internal/app/features/studentdash/applications.go
package studentdash

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/divyamvijayvargia/capstone-portal/internal/app/features/errors"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/policy/admission"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/authz"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/timeouts"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// applicationRow is one entry on the student's application list.
type applicationRow struct {
	FacultyID   string
	FacultyName string
	Status      string
	Reason      string
	AppliedAt   string
	Withdrawble bool
}

type applicationsData struct {
	viewdata.BaseVM
	Rows           []applicationRow
	RemainingSlots int
	IsPlaced       bool
	Notice         string
	NoticeKind     string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /student/applications                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeApplications(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	student, err := h.Users.GetStudentByID(ctx, uid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Student profile not found.", "/")
		return
	}

	apps, err := h.Applications.ListByStudent(ctx, student.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list applications failed", err, "A database error occurred.", "/student")
		return
	}

	facultyIDs := make([]primitive.ObjectID, 0, len(apps))
	for _, a := range apps {
		facultyIDs = append(facultyIDs, a.FacultyID)
	}
	faculty, err := h.Users.GetManyByIDs(ctx, facultyIDs)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load faculty failed", err, "A database error occurred.", "/student")
		return
	}

	rows := make([]applicationRow, 0, len(apps))
	for _, a := range apps {
		name := "N/A"
		if f, ok := faculty[a.FacultyID]; ok {
			name = f.Name
		}
		rows = append(rows, applicationRow{
			FacultyID:   a.FacultyID.Hex(),
			FacultyName: name,
			Status:      a.Status,
			Reason:      a.Reason,
			AppliedAt:   a.AppliedAt.Format("Jan 2, 2006"),
			Withdrawble: admission.CanWithdraw(&a, student).Allowed,
		})
	}

	data := applicationsData{
		BaseVM:         viewdata.NewBaseVM(r, "My Applications", "/student"),
		Rows:           rows,
		RemainingSlots: admission.RemainingSlots(len(apps)),
		IsPlaced:       student.IsAccepted,
	}
	if msg := query.Get(r, "msg"); msg != "" {
		data.Notice, data.NoticeKind = noticeText(msg), "info"
	}
	if errMsg := query.Get(r, "err"); errMsg != "" {
		data.Notice, data.NoticeKind = errMsg, "error"
	}

	templates.Render(w, r, "student_applications", data)
}
