package requestid_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letterkit/letterkit/pkg/requestid"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	run := func(t *testing.T, header string) (string, *httptest.ResponseRecorder) {
		t.Helper()

		var fromCtx string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fromCtx = requestid.FromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(requestid.Header, header)
		}
		rec := httptest.NewRecorder()
		requestid.Middleware(next).ServeHTTP(rec, req)
		return fromCtx, rec
	}

	t.Run("generates an id when absent", func(t *testing.T) {
		t.Parallel()

		id, rec := run(t, "")
		require.NotEmpty(t, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, rec.Header().Get(requestid.Header))
	})

	t.Run("reuses a valid client id", func(t *testing.T) {
		t.Parallel()

		id, rec := run(t, "client-id_42")
		assert.Equal(t, "client-id_42", id)
		assert.Equal(t, "client-id_42", rec.Header().Get(requestid.Header))
	})

	t.Run("replaces invalid ids", func(t *testing.T) {
		t.Parallel()

		for _, bad := range []string{"has space", "semi;colon", strings.Repeat("x", 129)} {
			id, _ := run(t, bad)
			assert.NotEqual(t, bad, id)
		}
	})
}
