package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-filecms/internal/documents"
	"github.com/goliatone/go-filecms/internal/logging"
)

type snapshotContextKey struct{}

func withSnapshot(ctx context.Context, snap documents.Snapshot) context.Context {
	return context.WithValue(ctx, snapshotContextKey{}, snap)
}

func snapshotFrom(ctx context.Context) documents.Snapshot {
	snap, _ := ctx.Value(snapshotContextKey{}).(documents.Snapshot)
	return snap
}

// takeSnapshot lists the store once per request, before route logic.
func (s *Server) takeSnapshot(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap, err := documents.TakeSnapshot(r.Context(), s.documents)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSnapshot(r.Context(), snap)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logging.ContextWithFields(r.Context(), map[string]any{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		s.logger.WithContext(ctx).Info("request.completed",
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
