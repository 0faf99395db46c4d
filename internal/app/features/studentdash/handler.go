// internal/app/features/studentdash/handler.go
package studentdash

import (
	uierrors "github.com/divyamvijayvargia/capstone-portal/internal/app/features/errors"
	applicationstore "github.com/divyamvijayvargia/capstone-portal/internal/app/store/applications"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/store/refdata"
	userstore "github.com/divyamvijayvargia/capstone-portal/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the student-facing pages: faculty browsing, the student's
// application list, and the apply/withdraw actions.
type Handler struct {
	DB           *mongo.Database
	Users        *userstore.Store
	Applications *applicationstore.Store
	RefData      *refdata.Store
	Log          *zap.Logger
	ErrLog       *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Users:        userstore.New(db),
		Applications: applicationstore.New(db),
		RefData:      refdata.New(db),
		Log:          logger,
		ErrLog:       errLog,
	}
}
