package applicationstore_test

import (
	"errors"
	"testing"

	applicationstore "github.com/divyamvijayvargia/capstone-portal/internal/app/store/applications"
	"github.com/divyamvijayvargia/capstone-portal/internal/domain/models"
	"github.com/divyamvijayvargia/capstone-portal/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Student", "s@example.com", models.StudentTypeUG)
	faculty := fixtures.CreateFaculty(ctx, "Faculty", "f@example.com", 2, 0, 0)

	app, err := store.Create(ctx, &student, faculty.ID, "Interested in ML")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if app.ID != models.ApplicationID(student.ID, faculty.ID) {
		t.Errorf("unexpected composite key %q", app.ID)
	}
	if app.Status != models.StatusPending {
		t.Errorf("status = %q, want Pending", app.Status)
	}
	if app.StudentType != models.StudentTypeUG {
		t.Errorf("student type snapshot = %q, want ug", app.StudentType)
	}
	if app.AppliedAt.IsZero() {
		t.Error("expected AppliedAt to be set")
	}

	// A second application to the same faculty hits the composite key.
	_, err = store.Create(ctx, &student, faculty.ID, "again")
	if !errors.Is(err, applicationstore.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestStore_Get_NormalizesLegacyStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Student", "s@example.com", models.StudentTypeUG)
	faculty := fixtures.CreateFaculty(ctx, "Faculty", "f@example.com", 0, 0, 0)
	fixtures.CreateApplication(ctx, student, faculty, "pending")

	got, err := store.Get(ctx, student.ID, faculty.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("status = %q, want normalized Pending", got.Status)
	}
}

func TestStore_ListByFaculty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	faculty := fixtures.CreateFaculty(ctx, "Faculty", "f@example.com", 0, 0, 0)
	s1 := fixtures.CreateStudent(ctx, "S1", "s1@example.com", models.StudentTypeUG)
	s2 := fixtures.CreateStudent(ctx, "S2", "s2@example.com", models.StudentTypePG)
	s3 := fixtures.CreateStudent(ctx, "S3", "s3@example.com", models.StudentTypeUG)

	fixtures.CreateApplication(ctx, s1, faculty, models.StatusPending)
	fixtures.CreateApplication(ctx, s2, faculty, "pending") // legacy casing
	fixtures.CreateApplication(ctx, s3, faculty, models.StatusRejected)

	all, err := store.ListByFaculty(ctx, faculty.ID, "")
	if err != nil {
		t.Fatalf("ListByFaculty failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 applications, got %d", len(all))
	}

	pending, err := store.ListByFaculty(ctx, faculty.ID, models.StatusPending)
	if err != nil {
		t.Fatalf("ListByFaculty pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending (incl. legacy casing), got %d", len(pending))
	}
	for _, a := range pending {
		if a.Status != models.StatusPending {
			t.Errorf("status = %q, want normalized Pending", a.Status)
		}
	}
}

func TestStore_Withdraw(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Student", "s@example.com", models.StudentTypeUG)
	f1 := fixtures.CreateFaculty(ctx, "F1", "f1@example.com", 0, 0, 0)
	f2 := fixtures.CreateFaculty(ctx, "F2", "f2@example.com", 0, 0, 0)
	fixtures.CreateApplication(ctx, student, f1, models.StatusPending)
	fixtures.CreateApplication(ctx, student, f2, models.StatusAccepted)

	n, err := store.Withdraw(ctx, student.ID, f1.ID)
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}

	// Accepted applications are not withdrawable.
	n, err = store.Withdraw(ctx, student.ID, f2.ID)
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if n != 0 {
		t.Errorf("deleted = %d, want 0 for accepted application", n)
	}

	if _, err := store.Get(ctx, student.ID, f1.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected withdrawn application to be gone, got %v", err)
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Student", "s@example.com", models.StudentTypeUG)
	faculty := fixtures.CreateFaculty(ctx, "Faculty", "f@example.com", 0, 0, 0)
	app := fixtures.CreateApplication(ctx, student, faculty, models.StatusPending)

	if err := store.SetStatus(ctx, app.ID, models.StatusRejected, "Team is full"); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	got, err := store.GetByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.StatusRejected {
		t.Errorf("status = %q, want Rejected", got.Status)
	}
	if got.Reason != "Team is full" {
		t.Errorf("reason = %q", got.Reason)
	}

	// A terminal application cannot transition again.
	err = store.SetStatus(ctx, app.ID, models.StatusAccepted, "")
	if !errors.Is(err, applicationstore.ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}

func TestStore_DeleteOthersForStudent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Student", "s@example.com", models.StudentTypeUG)
	other := fixtures.CreateStudent(ctx, "Other", "o@example.com", models.StudentTypeUG)
	f1 := fixtures.CreateFaculty(ctx, "F1", "f1@example.com", 0, 0, 0)
	f2 := fixtures.CreateFaculty(ctx, "F2", "f2@example.com", 0, 0, 0)
	f3 := fixtures.CreateFaculty(ctx, "F3", "f3@example.com", 0, 0, 0)

	keep := fixtures.CreateApplication(ctx, student, f1, models.StatusAccepted)
	fixtures.CreateApplication(ctx, student, f2, models.StatusPending)
	fixtures.CreateApplication(ctx, student, f3, models.StatusPending)
	fixtures.CreateApplication(ctx, other, f2, models.StatusPending)

	n, err := store.DeleteOthersForStudent(ctx, student.ID, keep.ID)
	if err != nil {
		t.Fatalf("DeleteOthersForStudent failed: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}

	remaining, err := store.ListByStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("ListByStudent failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != keep.ID {
		t.Errorf("expected only the accepted application to remain")
	}

	// Other students' applications are untouched.
	otherApps, _ := store.ListByStudent(ctx, other.ID)
	if len(otherApps) != 1 {
		t.Errorf("other student lost applications")
	}
}

func TestStore_AcceptedCountsByFaculty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	faculty := fixtures.CreateFaculty(ctx, "Faculty", "f@example.com", 0, 0, 0)
	s1 := fixtures.CreateStudent(ctx, "S1", "s1@example.com", models.StudentTypeUG)
	s2 := fixtures.CreateStudent(ctx, "S2", "s2@example.com", models.StudentTypeUG)
	s3 := fixtures.CreateStudent(ctx, "S3", "s3@example.com", models.StudentTypePG)
	s4 := fixtures.CreateStudent(ctx, "S4", "s4@example.com", models.StudentTypeUG)

	fixtures.CreateApplication(ctx, s1, faculty, models.StatusAccepted)
	fixtures.CreateApplication(ctx, s2, faculty, "accepted") // legacy casing
	fixtures.CreateApplication(ctx, s3, faculty, models.StatusAccepted)
	fixtures.CreateApplication(ctx, s4, faculty, models.StatusPending)

	counts, err := store.AcceptedCountsByFaculty(ctx, faculty.ID)
	if err != nil {
		t.Fatalf("AcceptedCountsByFaculty failed: %v", err)
	}
	if counts[models.StudentTypeUG] != 2 {
		t.Errorf("ug = %d, want 2", counts[models.StudentTypeUG])
	}
	if counts[models.StudentTypePG] != 1 {
		t.Errorf("pg = %d, want 1", counts[models.StudentTypePG])
	}
}
