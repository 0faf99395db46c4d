// internal/app/features/profilesetup/setup.go
package profilesetup

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/divyamvijayvargia/capstone-portal/internal/app/features/errors"
	userstore "github.com/divyamvijayvargia/capstone-portal/internal/app/store/users"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/authz"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/timeouts"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/viewdata"
	"github.com/divyamvijayvargia/capstone-portal/internal/domain/models"
	"go.uber.org/zap"
)

type chooserData struct {
	viewdata.BaseVM
}

type studentFormData struct {
	viewdata.BaseVM
	Error   string
	IsEdit  bool
	Action  string
	Student models.User
}

type facultyFormData struct {
	viewdata.BaseVM
	Error       string
	IsEdit      bool
	Action      string
	Faculty     models.User
	Departments []models.RefItem
	Domains     []models.RefItem
	SelectedDep map[string]bool
	SelectedDom map[string]bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /profile/setup – choose a role                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeSetup(w http.ResponseWriter, r *http.Request) {
	if dest, done := h.redirectIfComplete(r); done {
		http.Redirect(w, r, dest, http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "profile_setup", chooserData{
		BaseVM: viewdata.NewBaseVM(r, "Complete your profile", "/"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET/POST /profile/setup/student                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeSetupStudent(w http.ResponseWriter, r *http.Request) {
	if dest, done := h.redirectIfComplete(r); done {
		http.Redirect(w, r, dest, http.StatusSeeOther)
		return
	}
	h.renderStudentForm(w, r, models.User{TeamSize: 1}, "", false)
}

func (h *Handler) HandleSetupStudent(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/profile/setup")
		return
	}

	profile, errMsg := parseStudentForm(r)
	if errMsg != "" {
		h.renderStudentForm(w, r, studentFromProfile(profile, r), errMsg, false)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.CompleteStudentProfile(ctx, uid, profile); err != nil {
		h.ErrLog.LogServerError(w, r, "complete student profile failed", err, "Unable to save your profile.", "/profile/setup")
		return
	}

	h.Log.Info("student profile completed", zap.String("user_id", uid.Hex()))
	http.Redirect(w, r, "/student", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET/POST /profile/setup/faculty                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeSetupFaculty(w http.ResponseWriter, r *http.Request) {
	if dest, done := h.redirectIfComplete(r); done {
		http.Redirect(w, r, dest, http.StatusSeeOther)
		return
	}
	h.renderFacultyForm(w, r, models.User{}, "", false)
}

func (h *Handler) HandleSetupFaculty(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/profile/setup")
		return
	}

	profile, errMsg := parseFacultyForm(r)
	if errMsg != "" {
		h.renderFacultyForm(w, r, facultyFromProfile(profile, r), errMsg, false)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.CompleteFacultyProfile(ctx, uid, profile); err != nil {
		h.ErrLog.LogServerError(w, r, "complete faculty profile failed", err, "Unable to save your profile.", "/profile/setup")
		return
	}

	h.Log.Info("faculty profile completed", zap.String("user_id", uid.Hex()))
	http.Redirect(w, r, "/faculty", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Shared render helpers                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// redirectIfComplete returns the dashboard path for users whose profile is
// already set up. Setup pages are only for role-unset accounts.
func (h *Handler) redirectIfComplete(r *http.Request) (string, bool) {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		return "", false
	}
	switch role {
	case models.RoleStudent:
		return "/student", true
	case models.RoleFaculty:
		return "/faculty", true
	}
	return "", false
}

func (h *Handler) renderStudentForm(w http.ResponseWriter, r *http.Request, u models.User, errMsg string, isEdit bool) {
	title, action := "Student profile", "/profile/setup/student"
	if isEdit {
		title, action = "Edit profile", "/profile/edit"
	}

	templates.Render(w, r, "profile_student_form", studentFormData{
		BaseVM:  viewdata.NewBaseVM(r, title, "/"),
		Error:   errMsg,
		IsEdit:  isEdit,
		Action:  action,
		Student: u,
	})
}

func (h *Handler) renderFacultyForm(w http.ResponseWriter, r *http.Request, u models.User, errMsg string, isEdit bool) {
	title, action := "Faculty profile", "/profile/setup/faculty"
	if isEdit {
		title, action = "Edit profile", "/profile/edit"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	departments, err := h.RefData.Departments(ctx)
	if err != nil {
		h.Log.Warn("load departments failed", zap.Error(err))
	}
	domains, err := h.RefData.Domains(ctx)
	if err != nil {
		h.Log.Warn("load domains failed", zap.Error(err))
	}

	selectedDep := make(map[string]bool, len(u.Departments))
	for _, d := range u.Departments {
		selectedDep[d] = true
	}
	selectedDom := make(map[string]bool, len(u.Domains))
	for _, d := range u.Domains {
		selectedDom[d] = true
	}

	templates.Render(w, r, "profile_faculty_form", facultyFormData{
		BaseVM:      viewdata.NewBaseVM(r, title, "/"),
		Error:       errMsg,
		IsEdit:      isEdit,
		Action:      action,
		Faculty:     u,
		Departments: departments,
		Domains:     domains,
		SelectedDep: selectedDep,
		SelectedDom: selectedDom,
	})
}

// studentFromProfile rebuilds a User for form redisplay after a validation
// error, falling back to the raw form values for fields the parse rejected.
func studentFromProfile(p userstore.StudentProfile, r *http.Request) models.User {
	u := models.User{
		Name:               p.Name,
		RegistrationNumber: p.RegistrationNumber,
		StudentType:        p.StudentType,
		CGPA:               p.CGPA,
		Bio:                p.Bio,
		TeamSize:           p.TeamSize,
		TeamMembers:        p.TeamMembers,
	}
	if u.Name == "" {
		u.Name = r.FormValue("name")
	}
	if u.RegistrationNumber == "" {
		u.RegistrationNumber = r.FormValue("registration_number")
	}
	if u.Bio == "" {
		u.Bio = r.FormValue("bio")
	}
	if u.TeamSize == 0 {
		u.TeamSize = 1
	}
	return u
}

func facultyFromProfile(p userstore.FacultyProfile, r *http.Request) models.User {
	u := models.User{
		Name:         p.Name,
		EmpID:        p.EmpID,
		Departments:  p.Departments,
		Domains:      p.Domains,
		Bio:          p.Bio,
		UGLimit:      p.UGLimit,
		PGLimit:      p.PGLimit,
		MastersLimit: p.MastersLimit,
	}
	if u.Name == "" {
		u.Name = r.FormValue("name")
	}
	if u.EmpID == "" {
		u.EmpID = r.FormValue("emp_id")
	}
	if u.Bio == "" {
		u.Bio = r.FormValue("bio")
	}
	if len(u.Departments) == 0 {
		u.Departments = r.Form["departments"]
	}
	if len(u.Domains) == 0 {
		u.Domains = r.Form["domains"]
	}
	return u
}
