package middleware

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/marinsprosper/minha-plataforma/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestIDMiddleware tags every request with an id, echoed back in the
// X-Request-ID header and attached to log lines.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), utils.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogMiddleware logs method, path, status and latency per request.
func RequestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		fields := logrus.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"status":  rec.status,
			"latency": time.Since(start).String(),
		}
		if id, ok := r.Context().Value(utils.RequestIDKey).(string); ok {
			fields["request_id"] = id
		}
		utils.Log.WithFields(fields).Info("request")
	})
}

// RecoveryMiddleware turns panics into 500s instead of dropped connections.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				utils.Log.WithFields(logrus.Fields{
					"panic": rec,
					"path":  r.URL.Path,
				}).Error(string(debug.Stack()))
				utils.WriteError(w, http.StatusInternalServerError, "Erro interno.")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
