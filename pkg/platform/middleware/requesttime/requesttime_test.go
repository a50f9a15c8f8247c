package requesttime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"staffdir/pkg/requestcontext"
)

func TestMiddlewareStoresRequestTime(t *testing.T) {
	var seen time.Time
	var ok bool
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, ok = r.Context().Value(requestcontext.ContextKeyRequestTime).(time.Time)
	}))

	before := time.Now()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, ok)
	assert.False(t, seen.Before(before))
}
