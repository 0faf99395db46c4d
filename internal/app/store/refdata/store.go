// Package refdata serves the department and research-domain lists used by
// profile setup and the faculty browse filter.
//
// Both collections are small and append-only in practice; reads return the
// full list sorted by name.
package refdata

import (
	"context"
	"time"

	"github.com/divyamvijayvargia/capstone-portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	departments *mongo.Collection
	domains     *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		departments: db.Collection("departments"),
		domains:     db.Collection("domains"),
	}
}

// DefaultDepartments seeds the departments collection on first boot.
var DefaultDepartments = []string{
	"SCOPE",
	"SENSE",
	"SELECT",
	"SMEC",
	"SCE",
	"SBST",
	"SCHEME",
	"VITBS",
}

// DefaultDomains seeds the domains collection on first boot.
var DefaultDomains = []string{
	"Machine Learning",
	"Deep Learning",
	"Computer Vision",
	"Natural Language Processing",
	"Data Science",
	"Cyber Security",
	"Blockchain",
	"Internet of Things",
	"Cloud Computing",
	"Distributed Systems",
	"Networks",
	"Software Engineering",
	"Human-Computer Interaction",
	"Robotics",
	"Embedded Systems",
}

// Departments returns all departments sorted by name.
func (s *Store) Departments(ctx context.Context) ([]models.RefItem, error) {
	return list(ctx, s.departments)
}

// Domains returns all research domains sorted by name.
func (s *Store) Domains(ctx context.Context) ([]models.RefItem, error) {
	return list(ctx, s.domains)
}

func list(ctx context.Context, c *mongo.Collection) ([]models.RefItem, error) {
	cur, err := c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.RefItem
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Seed inserts the default lists into empty collections. Existing data is
// left untouched, so operators can curate the lists after first boot.
func (s *Store) Seed(ctx context.Context) error {
	if err := seed(ctx, s.departments, DefaultDepartments); err != nil {
		return err
	}
	return seed(ctx, s.domains, DefaultDomains)
}

func seed(ctx context.Context, c *mongo.Collection, names []string) error {
	n, err := c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(names))
	for _, name := range names {
		docs = append(docs, bson.M{
			"_id":        primitive.NewObjectID(),
			"name":       name,
			"created_at": now,
		})
	}
	_, err = c.InsertMany(ctx, docs)
	return err
}
