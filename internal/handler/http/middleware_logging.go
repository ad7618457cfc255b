package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/rs/zerolog"
)

// oauthSecretParams are the callback query parameters that never reach the
// access log.
var oauthSecretParams = []string{"code", "state"}

func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		var event *zerolog.Event
		switch {
		case lw.status >= http.StatusInternalServerError:
			event = log.Error()
		case lw.status >= http.StatusBadRequest:
			event = log.Warn()
		case isStaticPath(r.URL.Path):
			event = log.Debug()
		default:
			event = log.Info()
		}

		if location := lw.Header().Get("Location"); location != "" {
			event = event.Str("location", location)
		}

		event.
			Str("uri", loggableURI(r)).
			Str("method", r.Method).
			Str("remote_addr", r.RemoteAddr).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}

// loggableURI returns the request URI with OAuth callback secrets masked.
func loggableURI(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return r.RequestURI
	}

	query := r.URL.Query()
	masked := false
	for _, key := range oauthSecretParams {
		if query.Has(key) {
			query.Set(key, "redacted")
			masked = true
		}
	}
	if !masked {
		return r.RequestURI
	}

	return r.URL.Path + "?" + query.Encode()
}

func isStaticPath(path string) bool {
	for _, prefix := range staticPrefixes {
		if strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
