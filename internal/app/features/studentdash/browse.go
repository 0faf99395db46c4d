// internal/app/features/studentdash/browse.go
package studentdash

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/divyamvijayvargia/capstone-portal/internal/app/features/errors"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/policy/admission"
	userstore "github.com/divyamvijayvargia/capstone-portal/internal/app/store/users"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/authz"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/timeouts"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/viewdata"
	"github.com/divyamvijayvargia/capstone-portal/internal/domain/models"
)

// facultyCard is one faculty entry on the browse page.
type facultyCard struct {
	ID          string
	Name        string
	Departments []string
	Domains     []string
	Bio         string
	UGLimit     int
	PGLimit     int
	MastersLmt  int
	Applied     bool
	Status      string // set when Applied
}

type browseData struct {
	viewdata.BaseVM
	Query          string
	Domain         string
	Domains        []models.RefItem
	Faculty        []facultyCard
	RemainingSlots int
	IsPlaced       bool
	PlacedWith     string
	Notice         string
	NoticeKind     string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /student – browse faculty                                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeBrowse(w http.ResponseWriter, r *http.Request) {
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

	q := query.Get(r, "q")
	domain := query.Get(r, "domain")

	faculty, err := h.Users.ListFaculty(ctx, userstore.FacultyFilter{
		NameQuery: q,
		Domain:    domain,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list faculty failed", err, "A database error occurred.", "/")
		return
	}

	apps, err := h.Applications.ListByStudent(ctx, student.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list applications failed", err, "A database error occurred.", "/")
		return
	}

	statusByFaculty := make(map[string]string, len(apps))
	for _, a := range apps {
		statusByFaculty[a.FacultyID.Hex()] = a.Status
	}

	cards := make([]facultyCard, 0, len(faculty))
	for _, f := range faculty {
		status, applied := statusByFaculty[f.ID.Hex()]
		cards = append(cards, facultyCard{
			ID:          f.ID.Hex(),
			Name:        f.Name,
			Departments: f.Departments,
			Domains:     f.Domains,
			Bio:         f.Bio,
			UGLimit:     f.UGLimit,
			PGLimit:     f.PGLimit,
			MastersLmt:  f.MastersLimit,
			Applied:     applied,
			Status:      status,
		})
	}

	domains, err := h.RefData.Domains(ctx)
	if err != nil {
		h.Log.Warn("load domains failed")
	}

	placedWith := ""
	if student.IsAccepted && student.AcceptedFacultyID != nil {
		if f, err := h.Users.GetFacultyByID(ctx, *student.AcceptedFacultyID); err == nil {
			placedWith = f.Name
		}
	}

	data := browseData{
		BaseVM:         viewdata.NewBaseVM(r, "Browse Faculty", "/student"),
		Query:          q,
		Domain:         domain,
		Domains:        domains,
		Faculty:        cards,
		RemainingSlots: admission.RemainingSlots(len(apps)),
		IsPlaced:       student.IsAccepted,
		PlacedWith:     placedWith,
	}
	if msg := query.Get(r, "msg"); msg != "" {
		data.Notice, data.NoticeKind = noticeText(msg), "info"
	}
	if errCode := query.Get(r, "err"); errCode != "" {
		data.Notice, data.NoticeKind = errCode, "error"
	}

	templates.Render(w, r, "student_browse", data)
}

func noticeText(code string) string {
	switch code {
	case "applied":
		return "Application submitted."
	case "withdrawn":
		return "Application withdrawn."
	}
	return code
}
