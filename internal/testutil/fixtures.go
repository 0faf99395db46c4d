package testutil

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/divyamvijayvargia/capstone-portal/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateStudent creates a student user with a completed profile.
func (f *Fixtures) CreateStudent(ctx context.Context, name, email, studentType string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:                 primitive.NewObjectID(),
		Email:              email,
		Role:               models.RoleStudent,
		Name:               name,
		NameCI:             strings.ToLower(name),
		RegistrationNumber: "21BCE0001",
		StudentType:        studentType,
		Bio:                "Test student bio",
		CGPA:               8.5,
		TeamSize:           1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return u
}

// CreateFaculty creates a faculty user with the given per-category limits
// (0 = unlimited).
func (f *Fixtures) CreateFaculty(ctx context.Context, name, email string, ugLimit, pgLimit, mastersLimit int) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		Role:         models.RoleFaculty,
		Name:         name,
		NameCI:       strings.ToLower(name),
		EmpID:        "EMP1001",
		Departments:  []string{"SCOPE"},
		Domains:      []string{"Machine Learning"},
		Bio:          "Test faculty bio",
		UGLimit:      ugLimit,
		PGLimit:      pgLimit,
		MastersLimit: mastersLimit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test faculty: %v", err)
	}
	return u
}

// CreateUnsetUser creates a user that has not completed profile setup.
func (f *Fixtures) CreateUnsetUser(ctx context.Context, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Role:      "",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateApplication inserts an application document with the composite key.
func (f *Fixtures) CreateApplication(ctx context.Context, student, faculty models.User, status string) models.Application {
	f.t.Helper()

	app := models.Application{
		ID:          models.ApplicationID(student.ID, faculty.ID),
		StudentID:   student.ID,
		FacultyID:   faculty.ID,
		StudentType: student.StudentType,
		Status:      status,
		Reason:      "Interested in this research area",
		AppliedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("faculty_applications").InsertOne(ctx, app); err != nil {
		f.t.Fatalf("failed to create test application: %v", err)
	}
	return app
}
