// internal/app/features/profilesetup/forms.go
package profilesetup

import (
	"net/http"
	"strconv"
	"strings"

	userstore "github.com/divyamvijayvargia/capstone-portal/internal/app/store/users"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/htmlsanitize"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/inputval"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/normalize"
	"github.com/divyamvijayvargia/capstone-portal/internal/domain/models"
)

// studentForm carries the student profile fields for validation.
type studentForm struct {
	Name               string  `validate:"required,max=120" label:"Name"`
	RegistrationNumber string  `validate:"required,len=9" label:"Registration number"`
	StudentType        string  `validate:"required,oneof=ug pg masters" label:"Student category"`
	CGPA               float64 `validate:"gte=0,lte=10" label:"CGPA"`
	Bio                string  `validate:"max=2000" label:"Bio"`
	TeamSize           int     `validate:"gte=1,lte=5" label:"Team size"`
}

// facultyForm carries the faculty profile fields for validation.
// Zero limits mean unlimited intake for that category.
type facultyForm struct {
	Name         string `validate:"required,max=120" label:"Name"`
	EmpID        string `validate:"required,max=20" label:"Employee ID"`
	Bio          string `validate:"max=2000" label:"Bio"`
	UGLimit      int    `validate:"gte=0,lte=100" label:"UG limit"`
	PGLimit      int    `validate:"gte=0,lte=100" label:"PG limit"`
	MastersLimit int    `validate:"gte=0,lte=100" label:"Masters limit"`
}

// parseStudentForm reads the student profile form from r. The returned
// error string is empty when the input is valid.
func parseStudentForm(r *http.Request) (userstore.StudentProfile, string) {
	form := studentForm{
		Name:               strings.TrimSpace(r.FormValue("name")),
		RegistrationNumber: normalize.RegistrationNumber(r.FormValue("registration_number")),
		StudentType:        normalize.StudentType(r.FormValue("student_type")),
		Bio:                strings.TrimSpace(r.FormValue("bio")),
	}

	form.CGPA, _ = strconv.ParseFloat(strings.TrimSpace(r.FormValue("cgpa")), 64)
	form.TeamSize, _ = strconv.Atoi(strings.TrimSpace(r.FormValue("team_size")))
	if form.TeamSize == 0 {
		form.TeamSize = 1
	}

	if result := inputval.Validate(form); result.HasErrors() {
		return userstore.StudentProfile{}, result.First()
	}

	members := parseTeamMembers(r)
	if len(members) != form.TeamSize-1 {
		return userstore.StudentProfile{}, "List one team member for each additional member of your team."
	}

	return userstore.StudentProfile{
		Name:               form.Name,
		RegistrationNumber: form.RegistrationNumber,
		StudentType:        form.StudentType,
		CGPA:               form.CGPA,
		Bio:                htmlsanitize.Sanitize(form.Bio),
		TeamSize:           form.TeamSize,
		TeamMembers:        members,
	}, ""
}

// parseTeamMembers collects the additional team member rows, skipping rows
// left entirely blank.
func parseTeamMembers(r *http.Request) []models.TeamMember {
	names := r.Form["team_member_name"]
	regs := r.Form["team_member_reg"]

	var members []models.TeamMember
	for i := range names {
		name := strings.TrimSpace(names[i])
		reg := ""
		if i < len(regs) {
			reg = normalize.RegistrationNumber(regs[i])
		}
		if name == "" && reg == "" {
			continue
		}
		members = append(members, models.TeamMember{
			Name:               name,
			RegistrationNumber: reg,
		})
	}
	return members
}

// parseFacultyForm reads the faculty profile form from r. The returned
// error string is empty when the input is valid.
func parseFacultyForm(r *http.Request) (userstore.FacultyProfile, string) {
	form := facultyForm{
		Name:  strings.TrimSpace(r.FormValue("name")),
		EmpID: strings.TrimSpace(r.FormValue("emp_id")),
		Bio:   strings.TrimSpace(r.FormValue("bio")),
	}
	form.UGLimit, _ = strconv.Atoi(strings.TrimSpace(r.FormValue("ug_limit")))
	form.PGLimit, _ = strconv.Atoi(strings.TrimSpace(r.FormValue("pg_limit")))
	form.MastersLimit, _ = strconv.Atoi(strings.TrimSpace(r.FormValue("masters_limit")))

	if result := inputval.Validate(form); result.HasErrors() {
		return userstore.FacultyProfile{}, result.First()
	}

	departments := cleanSelection(r.Form["departments"])
	domains := cleanSelection(r.Form["domains"])
	if len(departments) == 0 {
		return userstore.FacultyProfile{}, "Select at least one department."
	}
	if len(domains) == 0 {
		return userstore.FacultyProfile{}, "Select at least one research domain."
	}

	return userstore.FacultyProfile{
		Name:         form.Name,
		EmpID:        form.EmpID,
		Departments:  departments,
		Domains:      domains,
		Bio:          htmlsanitize.Sanitize(form.Bio),
		UGLimit:      form.UGLimit,
		PGLimit:      form.PGLimit,
		MastersLimit: form.MastersLimit,
	}, ""
}

func cleanSelection(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
