// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user document can carry. A freshly created account (first Google
// sign-in) has an empty role until profile setup completes.
const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
)

// Account statuses. Disabled accounts keep their data but cannot sign in.
const (
	UserActive   = "active"
	UserDisabled = "disabled"
)

// Student categories. Faculty intake limits are tracked per category.
const (
	StudentTypeUG      = "ug"
	StudentTypePG      = "pg"
	StudentTypeMasters = "masters"
)

// TeamMember is one additional member of a student's capstone team.
// The profile owner is not listed here; a team of size N has N-1 entries.
type TeamMember struct {
	Name               string `bson:"name" json:"name"`
	RegistrationNumber string `bson:"registration_number" json:"registration_number"`
}

// User represents students, faculty, and accounts that have not completed
// profile setup yet (role == "").
//
// Exactly one of the student/faculty field groups is populated, determined
// by Role. Documents are created on first Google sign-in and are only ever
// mutated by their owner.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	AuthReturnID string             `bson:"auth_return_id,omitempty" json:"auth_return_id,omitempty"` // Google subject
	Role         string             `bson:"role" json:"role"`                                         // "" | "student" | "faculty"
	Status       string             `bson:"status,omitempty" json:"status,omitempty"`                 // "active" | "disabled"
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"name_ci"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`

	// Student fields
	RegistrationNumber string              `bson:"registration_number,omitempty" json:"registration_number,omitempty"`
	StudentType        string              `bson:"student_type,omitempty" json:"student_type,omitempty"`
	CGPA               float64             `bson:"cgpa,omitempty" json:"cgpa,omitempty"`
	TeamSize           int                 `bson:"team_size,omitempty" json:"team_size,omitempty"`
	TeamMembers        []TeamMember        `bson:"team_members,omitempty" json:"team_members,omitempty"`
	IsAccepted         bool                `bson:"is_accepted,omitempty" json:"is_accepted,omitempty"`
	AcceptedFacultyID  *primitive.ObjectID `bson:"accepted_faculty_id,omitempty" json:"accepted_faculty_id,omitempty"`

	// Faculty fields
	EmpID       string   `bson:"emp_id,omitempty" json:"emp_id,omitempty"`
	Departments []string `bson:"faculty_departments,omitempty" json:"faculty_departments,omitempty"`
	Domains     []string `bson:"faculty_domains,omitempty" json:"faculty_domains,omitempty"`
	// Intake limits per student category. Zero means unlimited.
	UGLimit      int `bson:"ug_limit,omitempty" json:"ug_limit,omitempty"`
	PGLimit      int `bson:"pg_limit,omitempty" json:"pg_limit,omitempty"`
	MastersLimit int `bson:"masters_limit,omitempty" json:"masters_limit,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsValidStudentType reports whether v is a known student category.
func IsValidStudentType(v string) bool {
	switch v {
	case StudentTypeUG, StudentTypePG, StudentTypeMasters:
		return true
	}
	return false
}

// LimitFor returns the faculty's intake limit for a student category.
// Zero means no cap.
func (u *User) LimitFor(studentType string) int {
	switch studentType {
	case StudentTypeUG:
		return u.UGLimit
	case StudentTypePG:
		return u.PGLimit
	case StudentTypeMasters:
		return u.MastersLimit
	}
	return 0
}
