// internal/app/features/facultydash/handler.go
package facultydash

import (
	uierrors "github.com/divyamvijayvargia/capstone-portal/internal/app/features/errors"
	applicationstore "github.com/divyamvijayvargia/capstone-portal/internal/app/store/applications"
	userstore "github.com/divyamvijayvargia/capstone-portal/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the faculty-facing pages: the incoming application list and
// the accept/reject actions.
type Handler struct {
	DB           *mongo.Database
	Users        *userstore.Store
	Applications *applicationstore.Store
	Log          *zap.Logger
	ErrLog       *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Users:        userstore.New(db),
		Applications: applicationstore.New(db),
		Log:          logger,
		ErrLog:       errLog,
	}
}
