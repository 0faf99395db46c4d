// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs structured logging with user-facing error pages so
// handlers report failures in one call.
type ErrorLogger struct {
	log *zap.Logger
}

func NewErrorLogger(log *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: log}
}

// LogServerError logs err at error level and renders a generic error page
// with userMsg. Use for database and other internal failures.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))

	w.WriteHeader(http.StatusInternalServerError)
	if userMsg == "" {
		userMsg = "Something went wrong. Please try again."
	}
	RenderForbidden(w, r, userMsg, backURL)
}

// LogBadRequest logs err at warn level and renders an error page with
// userMsg. Use for malformed input the user can correct.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Warn(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))

	w.WriteHeader(http.StatusBadRequest)
	if userMsg == "" {
		userMsg = "The request could not be processed."
	}
	RenderForbidden(w, r, userMsg, backURL)
}
