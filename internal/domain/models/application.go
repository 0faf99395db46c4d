// internal/domain/models/application.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application statuses. Pending is the initial state; Accepted and Rejected
// are terminal. Earlier data wrote lowercase "pending", so reads go through
// NormalizeStatus.
const (
	StatusPending  = "Pending"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

// Application is one student's application to one faculty member.
//
// The document _id is the composite "{studentHex}_{facultyHex}", which makes
// the storage layer enforce at-most-one application per pair. StudentType is
// snapshotted at apply time so later profile edits do not shift quota
// accounting.
type Application struct {
	ID          string             `bson:"_id" json:"id"`
	StudentID   primitive.ObjectID `bson:"student_id" json:"student_id"`
	FacultyID   primitive.ObjectID `bson:"faculty_id" json:"faculty_id"`
	StudentType string             `bson:"student_type" json:"student_type"`
	Status      string             `bson:"status" json:"status"`
	Reason      string             `bson:"reason,omitempty" json:"reason,omitempty"`
	AppliedAt   time.Time          `bson:"applied_at" json:"applied_at"`
}

// ApplicationID builds the composite document key for a (student, faculty) pair.
func ApplicationID(studentID, facultyID primitive.ObjectID) string {
	return studentID.Hex() + "_" + facultyID.Hex()
}

// NormalizeStatus maps legacy lowercase status values onto the canonical
// capitalized forms. Unknown values are returned unchanged.
func NormalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending
	case "accepted":
		return StatusAccepted
	case "rejected":
		return StatusRejected
	}
	return s
}

// IsTerminal reports whether the status admits no further mutation.
func IsTerminal(status string) bool {
	switch NormalizeStatus(status) {
	case StatusAccepted, StatusRejected:
		return true
	}
	return false
}
