// Package admission holds the application-admission rules shared by the
// student and faculty dashboards.
//
// Rules:
//   - A student may hold at most MaxOpenApplications applications at once.
//   - At most one application per (student, faculty) pair.
//   - A student holding a confirmed placement may not apply or withdraw.
//   - A faculty member may accept at most limit-per-category students; a
//     zero limit means unlimited.
//   - Accepting one application removes the student's other applications
//     (the caller performs that cascade transactionally).
//
// All functions here are pure: they decide over snapshots of user and
// application documents and never touch the database. Callers fetch the
// snapshot, ask for a decision, and only then perform the write.
package admission

import (
	"fmt"

	"github.com/divyamvijayvargia/capstone-portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxOpenApplications is the application slot cap: the number of
// concurrently open (non-withdrawn) applications one student may hold.
const MaxOpenApplications = 5

// Reason identifies why an action was denied.
type Reason string

const (
	ReasonAlreadyPlaced  Reason = "already_placed"
	ReasonAlreadyApplied Reason = "already_applied"
	ReasonSlotCapReached Reason = "slot_cap_reached"
	ReasonCategoryFull   Reason = "category_full"
	ReasonLimitReached   Reason = "limit_reached"
	ReasonNotPending     Reason = "not_pending"
	ReasonNotStudent     Reason = "not_student"
	ReasonNotFaculty     Reason = "not_faculty"
	ReasonWrongFaculty   Reason = "wrong_faculty"
)

// Decision is the outcome of a policy check. A denied Decision carries a
// reason code and a user-facing message; no state is mutated either way.
type Decision struct {
	Allowed bool
	Reason  Reason
	Message string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason Reason, msg string) Decision {
	return Decision{Reason: reason, Message: msg}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Derived aggregates                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// AppliedSet returns the set of faculty IDs the student has a non-withdrawn
// application with. Withdrawn applications are deleted, so every document in
// apps counts.
func AppliedSet(apps []models.Application, studentID primitive.ObjectID) map[primitive.ObjectID]struct{} {
	set := make(map[primitive.ObjectID]struct{})
	for _, a := range apps {
		if a.StudentID == studentID {
			set[a.FacultyID] = struct{}{}
		}
	}
	return set
}

// AcceptedCountsByType returns, for one faculty's applications, the number
// of Accepted applications per student category.
func AcceptedCountsByType(apps []models.Application) map[string]int {
	counts := make(map[string]int)
	for _, a := range apps {
		if models.NormalizeStatus(a.Status) == models.StatusAccepted {
			counts[a.StudentType]++
		}
	}
	return counts
}

// RemainingSlots returns how many more applications a student may open given
// their current open-application count. Never negative.
func RemainingSlots(openCount int) int {
	if openCount >= MaxOpenApplications {
		return 0
	}
	return MaxOpenApplications - openCount
}

/*─────────────────────────────────────────────────────────────────────────────*
| Student actions                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// CanApply decides whether student may open a new application to faculty.
// studentApps is the student's current open applications; facultyAccepted is
// the faculty's accepted count per category (from AcceptedCountsByType).
func CanApply(student, faculty *models.User, studentApps []models.Application, facultyAccepted map[string]int) Decision {
	if student.Role != models.RoleStudent {
		return deny(ReasonNotStudent, "Only students can apply to faculty.")
	}
	if faculty.Role != models.RoleFaculty {
		return deny(ReasonNotFaculty, "Applications can only be sent to faculty members.")
	}
	if student.IsAccepted {
		return deny(ReasonAlreadyPlaced, "You have already been accepted by a faculty member.")
	}

	applied := AppliedSet(studentApps, student.ID)
	if _, dup := applied[faculty.ID]; dup {
		return deny(ReasonAlreadyApplied, "You have already applied to this faculty.")
	}
	if len(applied) >= MaxOpenApplications {
		return deny(ReasonSlotCapReached,
			fmt.Sprintf("You can apply to at most %d faculty at a time. Withdraw an application to free a slot.", MaxOpenApplications))
	}

	// Apply is not limit-gated when the category still has room; a full
	// category is surfaced to the student up front rather than at accept time.
	if limit := faculty.LimitFor(student.StudentType); limit > 0 && facultyAccepted[student.StudentType] >= limit {
		return deny(ReasonCategoryFull, "This faculty has no remaining slots for your category.")
	}

	return allow()
}

// CanWithdraw decides whether student may delete an application. Only
// pending applications may be withdrawn, and a placed student may not undo
// their placement.
func CanWithdraw(app *models.Application, student *models.User) Decision {
	if student.IsAccepted {
		return deny(ReasonAlreadyPlaced, "Your placement is confirmed and cannot be withdrawn.")
	}
	if models.NormalizeStatus(app.Status) == models.StatusAccepted {
		return deny(ReasonNotPending, "An accepted application cannot be withdrawn.")
	}
	return allow()
}

/*─────────────────────────────────────────────────────────────────────────────*
| Faculty actions                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// CanAccept decides whether faculty may accept app. acceptedCounts is the
// faculty's current accepted count per category, not including app itself.
//
// On allow, the caller must perform the cascade atomically: mark the
// application Accepted, flag the student profile, and remove the student's
// other applications.
func CanAccept(app *models.Application, student, faculty *models.User, acceptedCounts map[string]int) Decision {
	if app.FacultyID != faculty.ID {
		return deny(ReasonWrongFaculty, "This application belongs to another faculty member.")
	}
	if models.NormalizeStatus(app.Status) != models.StatusPending {
		return deny(ReasonNotPending, "Only pending applications can be accepted.")
	}
	if student != nil && student.IsAccepted {
		// Another faculty accepted this student first.
		return deny(ReasonAlreadyPlaced, "This student has already been accepted elsewhere.")
	}
	if limit := faculty.LimitFor(app.StudentType); limit > 0 && acceptedCounts[app.StudentType]+1 > limit {
		return deny(ReasonLimitReached,
			fmt.Sprintf("Intake limit reached for %s students.", app.StudentType))
	}
	return allow()
}

// CanReject decides whether faculty may reject app. Rejection is always
// permitted on a pending application owned by the caller; it has no side
// effects on the student's other applications.
func CanReject(app *models.Application, faculty *models.User) Decision {
	if app.FacultyID != faculty.ID {
		return deny(ReasonWrongFaculty, "This application belongs to another faculty member.")
	}
	if models.NormalizeStatus(app.Status) != models.StatusPending {
		return deny(ReasonNotPending, "Only pending applications can be rejected.")
	}
	return allow()
}
