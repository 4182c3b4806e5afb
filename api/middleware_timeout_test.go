package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/whosonpole/whos-on-pole-api/api"
)

func TestTimeoutMiddlewareAllowsFastRequests(t *testing.T) {
	handler := api.TimeoutMiddleware(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/admin/users/points", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestTimeoutMiddlewareCutsOffSlowRequests(t *testing.T) {
	released := make(chan struct{})
	handler := api.TimeoutMiddleware(20*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// a stuck downstream call sees the deadline through the request context
		<-r.Context().Done()
		close(released)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/admin/users/points", nil))

	assert.Equal(t, http.StatusRequestTimeout, rr.Code)

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("handler context was not canceled")
	}
}
