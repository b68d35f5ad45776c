package api

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// loggingMiddleware writes one access line per request with the request id,
// final status, response size and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			status := ww.Status()
			if status == 0 {
				// nothing written; net/http sends 200
				status = http.StatusOK
			}
			reqID := middleware.GetReqID(r.Context())
			if reqID == "" {
				reqID = "-"
			}

			log.Printf(
				"req_id=%s method=%s path=%s status=%d bytes=%d dur=%dms",
				reqID, r.Method, r.URL.RequestURI(), status, ww.BytesWritten(), time.Since(start).Milliseconds(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
