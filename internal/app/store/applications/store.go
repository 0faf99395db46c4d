// Package applicationstore persists student applications to faculty.
//
// Documents live in the faculty_applications collection keyed by the
// composite "{studentHex}_{facultyHex}" _id, so the database itself rejects
// a second application for the same pair. Withdrawal deletes the document;
// there is no withdrawn status.
package applicationstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/divyamvijayvargia/capstone-portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("faculty_applications")}
}

var (
	// ErrAlreadyApplied is returned when the (student, faculty) pair already
	// has an application document.
	ErrAlreadyApplied = errors.New("an application to this faculty already exists")
	// ErrNotPending is returned when a status transition targets a document
	// that is no longer pending.
	ErrNotPending = errors.New("application is not pending")
)

// Create inserts a pending application, snapshotting the student's category
// at apply time.
func (s *Store) Create(ctx context.Context, student *models.User, facultyID primitive.ObjectID, reason string) (models.Application, error) {
	app := models.Application{
		ID:          models.ApplicationID(student.ID, facultyID),
		StudentID:   student.ID,
		FacultyID:   facultyID,
		StudentType: student.StudentType,
		Status:      models.StatusPending,
		Reason:      reason,
		AppliedAt:   time.Now(),
	}
	if _, err := s.c.InsertOne(ctx, app); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Application{}, ErrAlreadyApplied
		}
		return models.Application{}, err
	}
	return app, nil
}

// Get loads one application by its composite key. Returns
// mongo.ErrNoDocuments if absent.
func (s *Store) Get(ctx context.Context, studentID, facultyID primitive.ObjectID) (*models.Application, error) {
	return s.GetByID(ctx, models.ApplicationID(studentID, facultyID))
}

// GetByID loads one application by document ID.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&app); err != nil {
		return nil, err
	}
	app.Status = models.NormalizeStatus(app.Status)
	return &app, nil
}

// ListByStudent returns all of a student's applications, newest first.
func (s *Store) ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Application, error) {
	return s.list(ctx, bson.M{"student_id": studentID})
}

// ListByFaculty returns applications addressed to a faculty member, newest
// first. An empty status matches all statuses.
func (s *Store) ListByFaculty(ctx context.Context, facultyID primitive.ObjectID, status string) ([]models.Application, error) {
	filter := bson.M{"faculty_id": facultyID}
	if status != "" {
		// Legacy documents carry lowercase statuses.
		filter["status"] = bson.M{"$in": statusForms(status)}
	}
	return s.list(ctx, filter)
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Application, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "applied_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Application
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Status = models.NormalizeStatus(out[i].Status)
	}
	return out, nil
}

// Withdraw deletes the student's application to facultyID unless it has
// been accepted. Returns the number of documents removed (0 or 1).
func (s *Store) Withdraw(ctx context.Context, studentID, facultyID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{
		"_id":    models.ApplicationID(studentID, facultyID),
		"status": bson.M{"$nin": statusForms(models.StatusAccepted)},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// SetStatus moves a pending application to a terminal status, recording the
// faculty's reason. The filter requires the document to still be pending, so
// a concurrent decision cannot be overwritten; the loser gets ErrNotPending.
func (s *Store) SetStatus(ctx context.Context, id, status, reason string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": statusForms(models.StatusPending)}},
		bson.M{"$set": bson.M{"status": status, "reason": reason}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotPending
	}
	return nil
}

// DeleteOthersForStudent removes all of a student's applications except the
// one identified by keepID. Used by the accept cascade inside a transaction.
func (s *Store) DeleteOthersForStudent(ctx context.Context, studentID primitive.ObjectID, keepID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"student_id": studentID,
		"_id":        bson.M{"$ne": keepID},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AcceptedCountsByFaculty returns the faculty's accepted application count
// per student category.
func (s *Store) AcceptedCountsByFaculty(ctx context.Context, facultyID primitive.ObjectID) (map[string]int, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"faculty_id": facultyID,
			"status":     bson.M{"$in": statusForms(models.StatusAccepted)},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$student_type",
			"count": bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := make(map[string]int)
	for cur.Next(ctx) {
		var row struct {
			StudentType string `bson:"_id"`
			Count       int    `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.StudentType] = row.Count
	}
	return counts, cur.Err()
}

// CountOpenByStudent returns how many applications the student currently
// holds. Every stored application counts toward the slot cap.
func (s *Store) CountOpenByStudent(ctx context.Context, studentID primitive.ObjectID) (int, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"student_id": studentID})
	return int(n), err
}

// statusForms returns the canonical and legacy lowercase spellings of a
// status for use in $in filters.
func statusForms(status string) []string {
	norm := models.NormalizeStatus(status)
	lower := map[string]string{
		models.StatusPending:  "pending",
		models.StatusAccepted: "accepted",
		models.StatusRejected: "rejected",
	}[norm]
	if lower == "" {
		return []string{status}
	}
	return []string{norm, lower}
}
