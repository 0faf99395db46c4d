package userstore

import (
	"context"

	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/auth"
	"github.com/divyamvijayvargia/capstone-portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fetcher adapts Store to auth.UserFetcher so the session middleware can
// refresh the signed-in user on each request.
type Fetcher struct {
	Users *Store
}

// NewFetcher builds a Fetcher over the users collection of db.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{Users: New(db)}
}

func (f *Fetcher) FetchUser(ctx context.Context, userID string) *auth.SessionUser {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}
	u, err := f.Users.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	// Disabled accounts lose their session on the next request.
	if u.Status == models.UserDisabled {
		return nil
	}
	return &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
