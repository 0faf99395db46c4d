// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	authgooglefeature "github.com/divyamvijayvargia/capstone-portal/internal/app/features/authgoogle"
	errorsfeature "github.com/divyamvijayvargia/capstone-portal/internal/app/features/errors"
	facultydashfeature "github.com/divyamvijayvargia/capstone-portal/internal/app/features/facultydash"
	healthfeature "github.com/divyamvijayvargia/capstone-portal/internal/app/features/health"
	homefeature "github.com/divyamvijayvargia/capstone-portal/internal/app/features/home"
	loginfeature "github.com/divyamvijayvargia/capstone-portal/internal/app/features/login"
	logoutfeature "github.com/divyamvijayvargia/capstone-portal/internal/app/features/logout"
	profilesetupfeature "github.com/divyamvijayvargia/capstone-portal/internal/app/features/profilesetup"
	_ "github.com/divyamvijayvargia/capstone-portal/internal/app/features/shared/views"
	studentdashfeature "github.com/divyamvijayvargia/capstone-portal/internal/app/features/studentdash"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/store/oauthstate"
	userstore "github.com/divyamvijayvargia/capstone-portal/internal/app/store/users"
	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It creates the session manager, boots
// the template engine, and mounts feature routers for every part of the
// portal: public pages, Google sign-in, profile setup, and the student and
// faculty dashboards.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser fetches fresh user data on each request so role
	// changes and profile updates take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// CSRF protection on every state-changing request. Forms carry the
	// token via a hidden gorilla.csrf.Token input.
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey),
		csrf.Secure(secure),
		csrf.Path("/")))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	loginHandler := loginfeature.NewHandler(sessionMgr, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Google OAuth sign-in
	stateStore := oauthstate.New(deps.MongoDatabase)
	googleHandler := authgooglefeature.NewHandler(
		deps.MongoDatabase, sessionMgr, stateStore,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL,
		logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Profile setup and editing
	profileHandler := profilesetupfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/profile", profilesetupfeature.Routes(profileHandler, sessionMgr))

	// Student dashboard: browse faculty, apply, withdraw
	studentHandler := studentdashfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/student", studentdashfeature.Routes(studentHandler, sessionMgr))

	// Faculty dashboard: review, accept, reject
	facultyHandler := facultydashfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/faculty", facultydashfeature.Routes(facultyHandler, sessionMgr))

	return r, nil
}
