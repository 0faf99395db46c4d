package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/auth"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_NoUser(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	role, name, uid, ok := authz.UserCtx(r)
	if ok {
		t.Error("expected ok=false for request without user")
	}
	if role != "visitor" {
		t.Errorf("expected role 'visitor', got %q", role)
	}
	if name != "" {
		t.Errorf("expected empty name, got %q", name)
	}
	if uid != primitive.NilObjectID {
		t.Error("expected NilObjectID")
	}
}

func TestUserCtx_ValidUser(t *testing.T) {
	id := primitive.NewObjectID()
	r := httptest.NewRequest("GET", "/", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{
		ID:   id.Hex(),
		Name: "Asha Rao",
		Role: "Student",
	})

	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "student" {
		t.Errorf("expected lowercased role 'student', got %q", role)
	}
	if name != "Asha Rao" {
		t.Errorf("name: got %q", name)
	}
	if uid != id {
		t.Errorf("userID: got %v, want %v", uid, id)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{ID: "not-an-object-id", Role: "student"})

	_, _, _, ok := authz.UserCtx(r)
	if ok {
		t.Error("expected ok=false for malformed user ID")
	}
}

func TestRoleHelpers(t *testing.T) {
	student := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: primitive.NewObjectID().Hex(), Role: "student"})
	faculty := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: primitive.NewObjectID().Hex(), Role: "faculty"})
	unset := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: primitive.NewObjectID().Hex(), Role: ""})

	if !authz.IsStudent(student) || authz.IsStudent(faculty) {
		t.Error("IsStudent misclassified")
	}
	if !authz.IsFaculty(faculty) || authz.IsFaculty(student) {
		t.Error("IsFaculty misclassified")
	}
	if !authz.NeedsProfileSetup(unset) || authz.NeedsProfileSetup(student) {
		t.Error("NeedsProfileSetup misclassified")
	}
	if !authz.HasAnyRole(student, "faculty", "student") {
		t.Error("HasAnyRole should match student")
	}
	if authz.HasAnyRole(unset, "faculty", "student") {
		t.Error("HasAnyRole should not match unset role")
	}
}
