package profilesetup_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/divyamvijayvargia/capstone-portal/internal/app/features/errors"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/features/profilesetup"
	"github.com/divyamvijayvargia/capstone-portal/internal/domain/models"
	"github.com/divyamvijayvargia/capstone-portal/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*profilesetup.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := profilesetup.NewHandler(db, errors.NewErrorLogger(logger), logger)
	return h, testutil.NewFixtures(t, db)
}

func TestHandleSetupStudent_Success(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUnsetUser(ctx, "asha@example.edu")

	req := testutil.NewFormRequest("/profile/setup/student", url.Values{
		"name":                {"Asha Rao"},
		"registration_number": {"21bce0042"},
		"student_type":        {"ug"},
		"cgpa":                {"8.75"},
		"team_size":           {"1"},
	})
	req = testutil.WithUser(req, u)
	rec := httptest.NewRecorder()

	h.HandleSetupStudent(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/student" {
		t.Errorf("Location: got %q", loc)
	}

	got, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Role != models.RoleStudent {
		t.Errorf("Role: got %q, want %q", got.Role, models.RoleStudent)
	}
	if got.RegistrationNumber != "21BCE0042" {
		t.Errorf("RegistrationNumber: got %q", got.RegistrationNumber)
	}
}

func TestHandleSetupFaculty_Success(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUnsetUser(ctx, "mehta@example.edu")

	req := testutil.NewFormRequest("/profile/setup/faculty", url.Values{
		"name":          {"Dr. Mehta"},
		"emp_id":        {"EMP1042"},
		"ug_limit":      {"4"},
		"pg_limit":      {"0"},
		"masters_limit": {"2"},
		"departments":   {"SCOPE"},
		"domains":       {"Machine Learning"},
	})
	req = testutil.WithUser(req, u)
	rec := httptest.NewRecorder()

	h.HandleSetupFaculty(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/faculty" {
		t.Errorf("Location: got %q", loc)
	}

	got, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Role != models.RoleFaculty {
		t.Errorf("Role: got %q, want %q", got.Role, models.RoleFaculty)
	}
	if got.UGLimit != 4 || got.PGLimit != 0 || got.MastersLimit != 2 {
		t.Errorf("limits: got %d/%d/%d", got.UGLimit, got.PGLimit, got.MastersLimit)
	}
}

func TestServeSetup_RedirectsCompletedProfile(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fx.CreateStudent(ctx, "Asha Rao", "asha@example.edu", models.StudentTypeUG)

	req := httptest.NewRequest("GET", "/profile/setup", nil)
	req = testutil.WithUser(req, student)
	rec := httptest.NewRecorder()

	h.ServeSetup(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/student" {
		t.Errorf("Location: got %q", loc)
	}
}

func TestHandleEdit_Student(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fx.CreateStudent(ctx, "Asha Rao", "asha@example.edu", models.StudentTypeUG)

	req := testutil.NewFormRequest("/profile/edit", url.Values{
		"name":                {"Asha R. Rao"},
		"registration_number": {student.RegistrationNumber},
		"student_type":        {"ug"},
		"cgpa":                {"9.1"},
		"team_size":           {"1"},
	})
	req = testutil.WithUser(req, student)
	rec := httptest.NewRecorder()

	h.HandleEdit(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}

	got, err := h.Users.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Asha R. Rao" {
		t.Errorf("Name: got %q", got.Name)
	}
	if got.CGPA != 9.1 {
		t.Errorf("CGPA: got %v", got.CGPA)
	}
}

func TestHandleSetupStudent_NoReplay(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// A user who already completed setup cannot run it again.
	student := fx.CreateStudent(ctx, "Asha Rao", "asha@example.edu", models.StudentTypeUG)

	req := testutil.NewFormRequest("/profile/setup/student", url.Values{
		"name":                {"Someone Else"},
		"registration_number": {"21BCE9999"},
		"student_type":        {"pg"},
		"cgpa":                {"5.0"},
		"team_size":           {"1"},
	})
	req = testutil.WithUser(req, student)
	rec := httptest.NewRecorder()

	// The failure path renders an error page, which may panic in tests when
	// the template engine is not booted. The status is written first.
	func() {
		defer func() { _ = recover() }()
		h.HandleSetupStudent(rec, req)
	}()

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	got, err := h.Users.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Asha Rao" {
		t.Errorf("profile should be unchanged, got name %q", got.Name)
	}
}
