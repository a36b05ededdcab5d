package server

import (
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/scanbook/scanbook/pkg/domain/interfaces"
	"github.com/scanbook/scanbook/pkg/utils/logging"
)

func preProcess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID, ctx := logging.CtxRequestID(r.Context())
		logger := logging.Default().With(slog.Any("request_id", reqID))

		ctx = logging.With(ctx, logger)

		lw := &statusCodeLogger{
			ResponseWriter: w,
			statusCode:     http.StatusOK, // Default to 200 if WriteHeader is not called
		}

		requestedAt := time.Now()
		next.ServeHTTP(lw, r.WithContext(ctx))

		logger.Info("http access",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.Int("status_code", lw.statusCode),
			slog.Int64("content_length", r.ContentLength),
			slog.String("user_agent", r.UserAgent()),
			slog.Duration("elapsed", time.Since(requestedAt)),
		)
	})
}

type statusCodeLogger struct {
	http.ResponseWriter
	statusCode int
}

func (x *statusCodeLogger) WriteHeader(code int) {
	x.statusCode = code
	x.ResponseWriter.WriteHeader(code)
}

// authenticate verifies the bearer token and binds the resolved user ID to
// the request context. No protected handler runs without a resolved owner.
func authenticate(source interfaces.TokenSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if source == nil {
				logging.From(r.Context()).Error("token source is not configured")
				respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
				return
			}

			userID, err := source.Verify(token)
			if err != nil {
				logging.From(r.Context()).Warn("session token rejected", slog.Any("error", err))
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
				return
			}

			next.ServeHTTP(w, r.WithContext(ctxWithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
