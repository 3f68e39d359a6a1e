package tenant

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// HeaderName identifies the calling tenant. The gateway in front of this
// service authenticates the caller and sets the header; the service trusts it.
const HeaderName = "X-Tenant-ID"

// Middleware extracts the tenant ID from the request header and stores it in
// the context. Requests without a valid tenant are rejected before any
// handler runs.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderName)
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "MISSING_TENANT", "Tenant header is required")
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil || id == uuid.Nil {
			writeError(w, http.StatusUnauthorized, "INVALID_TENANT", "Tenant header must be a valid UUID")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"code":  code,
	})
}
