// internal/app/features/profilesetup/handler.go
package profilesetup

import (
	uierrors "github.com/divyamvijayvargia/capstone-portal/internal/app/features/errors"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/store/refdata"
	userstore "github.com/divyamvijayvargia/capstone-portal/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns profile setup and profile edit for both roles.
type Handler struct {
	DB      *mongo.Database
	Users   *userstore.Store
	RefData *refdata.Store
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Users:   userstore.New(db),
		RefData: refdata.New(db),
		Log:     logger,
		ErrLog:  errLog,
	}
}
