package userstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/normalize"
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
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when another account already owns the email.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrAlreadyPlaced is returned by MarkAccepted when the student already
	// holds a confirmed placement.
	ErrAlreadyPlaced = errors.New("student has already been accepted")
	errBadStudent    = errors.New(`student_type must be "ug"|"pg"|"masters"`)
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByGoogleID looks up a user by the Google subject recorded at first
// sign-in. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByGoogleID(ctx context.Context, sub string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"auth_return_id": sub}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetFacultyByID loads a user by ObjectID, returning an error if the user
// does not exist or is not a faculty role.
func (s *Store) GetFacultyByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "role": models.RoleFaculty}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetStudentByID loads a user by ObjectID, returning an error if the user
// does not exist or is not a student role.
func (s *Store) GetStudentByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "role": models.RoleStudent}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateFromGoogle inserts a role-unset account for a first Google sign-in.
// The caller routes the user to profile setup before anything else.
func (s *Store) CreateFromGoogle(ctx context.Context, email, name, sub string) (models.User, error) {
	now := time.Now()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Email:        normalize.Email(email),
		AuthReturnID: sub,
		Role:         "",
		Status:       models.UserActive,
		Name:         normalize.Name(name),
		NameCI:       text.Fold(name),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// StudentProfile holds the fields a student supplies during profile setup
// and later edits. Bio is expected to be sanitized before it gets here.
type StudentProfile struct {
	Name               string
	RegistrationNumber string
	StudentType        string
	CGPA               float64
	Bio                string
	TeamSize           int
	TeamMembers        []models.TeamMember
}

// FacultyProfile holds the fields a faculty member supplies during profile
// setup and later edits. Zero limits mean unlimited intake.
type FacultyProfile struct {
	Name         string
	EmpID        string
	Departments  []string
	Domains      []string
	Bio          string
	UGLimit      int
	PGLimit      int
	MastersLimit int
}

// CompleteStudentProfile sets role=student and the student fields on a
// role-unset account. It refuses to change an account that already has a
// role, so setup cannot be replayed to switch sides.
func (s *Store) CompleteStudentProfile(ctx context.Context, id primitive.ObjectID, p StudentProfile) error {
	if !models.IsValidStudentType(p.StudentType) {
		return errBadStudent
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "role": ""},
		bson.M{"$set": studentSet(p, models.RoleStudent)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CompleteFacultyProfile sets role=faculty and the faculty fields on a
// role-unset account.
func (s *Store) CompleteFacultyProfile(ctx context.Context, id primitive.ObjectID, p FacultyProfile) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "role": ""},
		bson.M{"$set": facultySet(p, models.RoleFaculty)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateStudentProfile rewrites the editable student fields. Only users
// with role=student match.
func (s *Store) UpdateStudentProfile(ctx context.Context, id primitive.ObjectID, p StudentProfile) error {
	if !models.IsValidStudentType(p.StudentType) {
		return errBadStudent
	}
	set := studentSet(p, models.RoleStudent)
	delete(set, "role")
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "role": models.RoleStudent},
		bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateFacultyProfile rewrites the editable faculty fields, including the
// per-category intake limits. Lowering a limit below the current accepted
// count is allowed; already-accepted students keep their placement.
func (s *Store) UpdateFacultyProfile(ctx context.Context, id primitive.ObjectID, p FacultyProfile) error {
	set := facultySet(p, models.RoleFaculty)
	delete(set, "role")
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "role": models.RoleFaculty},
		bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func studentSet(p StudentProfile, role string) bson.M {
	members := p.TeamMembers
	if members == nil {
		members = []models.TeamMember{}
	}
	return bson.M{
		"role":                role,
		"name":                normalize.Name(p.Name),
		"name_ci":             text.Fold(p.Name),
		"registration_number": normalize.RegistrationNumber(p.RegistrationNumber),
		"student_type":        normalize.StudentType(p.StudentType),
		"cgpa":                p.CGPA,
		"bio":                 p.Bio,
		"team_size":           p.TeamSize,
		"team_members":        members,
		"updated_at":          time.Now(),
	}
}

func facultySet(p FacultyProfile, role string) bson.M {
	depts := p.Departments
	if depts == nil {
		depts = []string{}
	}
	domains := p.Domains
	if domains == nil {
		domains = []string{}
	}
	return bson.M{
		"role":                role,
		"name":                normalize.Name(p.Name),
		"name_ci":             text.Fold(p.Name),
		"emp_id":              p.EmpID,
		"faculty_departments": depts,
		"faculty_domains":     domains,
		"bio":                 p.Bio,
		"ug_limit":            p.UGLimit,
		"pg_limit":            p.PGLimit,
		"masters_limit":       p.MastersLimit,
		"updated_at":          time.Now(),
	}
}

// MarkAccepted flags a student as placed with the given faculty. The filter
// requires is_accepted to still be unset, so when two faculty accept the
// same student concurrently only the first write lands; the loser gets
// ErrAlreadyPlaced.
func (s *Store) MarkAccepted(ctx context.Context, studentID, facultyID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":         studentID,
			"role":        models.RoleStudent,
			"is_accepted": bson.M{"$ne": true},
		},
		bson.M{"$set": bson.M{
			"is_accepted":         true,
			"accepted_faculty_id": facultyID,
			"updated_at":          time.Now(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAlreadyPlaced
	}
	return nil
}

// FacultyFilter narrows ListFaculty. Zero values match everything.
type FacultyFilter struct {
	NameQuery string // case-folded prefix match on name
	Domain    string // exact match against faculty_domains
}

// ListFaculty returns faculty profiles for the browse page, sorted by
// folded name.
func (s *Store) ListFaculty(ctx context.Context, f FacultyFilter) ([]models.User, error) {
	filter := bson.M{"role": models.RoleFaculty}
	if q := text.Fold(f.NameQuery); q != "" {
		filter["name_ci"] = bson.M{"$regex": "^" + regexp.QuoteMeta(q)}
	}
	if f.Domain != "" {
		filter["faculty_domains"] = f.Domain
	}

	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetManyByIDs loads users for a set of IDs, keyed by ID. Missing IDs are
// simply absent from the result.
func (s *Store) GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, cur.Err()
}
