// internal/app/features/facultydash/list.go
package facultydash

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/divyamvijayvargia/capstone-portal/internal/app/features/errors"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/authz"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/timeouts"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/viewdata"
	"github.com/divyamvijayvargia/capstone-portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// applicantRow is one application shown to the faculty member, joined with
// the applicant's profile. Profile fields fall back to "N/A" when the
// student account no longer exists.
type applicantRow struct {
	AppID       string
	StudentName string
	RegNumber   string
	StudentType string
	CGPA        float64
	TeamSize    int
	Bio         string
	Reason      string
	Status      string
	AppliedAt   string
	HasProfile  bool
}

type listData struct {
	viewdata.BaseVM
	Tab        string
	Rows       []applicantRow
	Counts     categoryCounts
	Notice     string
	NoticeKind string
}

// categoryCounts shows accepted-so-far against each intake limit.
type categoryCounts struct {
	UG         int
	PG         int
	Masters    int
	UGLimit    int
	PGLimit    int
	MastersLmt int
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /faculty – incoming applications, filterable by status tab               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	faculty, err := h.Users.GetFacultyByID(ctx, uid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Faculty profile not found.", "/")
		return
	}

	tab := models.NormalizeStatus(query.Get(r, "status"))
	switch tab {
	case models.StatusPending, models.StatusAccepted, models.StatusRejected:
	default:
		tab = models.StatusPending
	}

	apps, err := h.Applications.ListByFaculty(ctx, faculty.ID, tab)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list applications failed", err, "A database error occurred.", "/")
		return
	}

	studentIDs := make([]primitive.ObjectID, 0, len(apps))
	for _, a := range apps {
		studentIDs = append(studentIDs, a.StudentID)
	}
	students, err := h.Users.GetManyByIDs(ctx, studentIDs)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load students failed", err, "A database error occurred.", "/")
		return
	}

	rows := make([]applicantRow, 0, len(apps))
	for _, a := range apps {
		row := applicantRow{
			AppID:       a.ID,
			StudentName: "N/A",
			RegNumber:   "N/A",
			StudentType: a.StudentType,
			Reason:      a.Reason,
			Status:      a.Status,
			AppliedAt:   a.AppliedAt.Format("Jan 2, 2006"),
		}
		if s, ok := students[a.StudentID]; ok {
			row.StudentName = s.Name
			row.RegNumber = s.RegistrationNumber
			row.CGPA = s.CGPA
			row.TeamSize = s.TeamSize
			row.Bio = s.Bio
			row.HasProfile = true
		}
		rows = append(rows, row)
	}

	counts, err := h.Applications.AcceptedCountsByFaculty(ctx, faculty.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "accepted counts failed", err, "A database error occurred.", "/")
		return
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Applications", "/faculty"),
		Tab:    tab,
		Rows:   rows,
		Counts: categoryCounts{
			UG:         counts[models.StudentTypeUG],
			PG:         counts[models.StudentTypePG],
			Masters:    counts[models.StudentTypeMasters],
			UGLimit:    faculty.UGLimit,
			PGLimit:    faculty.PGLimit,
			MastersLmt: faculty.MastersLimit,
		},
	}
	if msg := query.Get(r, "msg"); msg != "" {
		data.Notice, data.NoticeKind = noticeText(msg), "info"
	}
	if errMsg := query.Get(r, "err"); errMsg != "" {
		data.Notice, data.NoticeKind = errMsg, "error"
	}

	templates.Render(w, r, "faculty_list", data)
}

func noticeText(code string) string {
	switch code {
	case "accepted":
		return "Application accepted. The student's other applications were removed."
	case "rejected":
		return "Application rejected."
	}
	return code
}
