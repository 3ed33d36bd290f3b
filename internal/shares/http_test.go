package shares

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerotocryptodev/backend/internal/auth"
)

type fakeTracker struct {
	insertErr    error
	incrementErr error

	insertedTarget   string
	insertedPlatform string
	insertedActor    *string
	incremented      bool
}

func (f *fakeTracker) InsertEvent(_ context.Context, targetUserID, platform string, actorID *string) error {
	f.insertedTarget = targetUserID
	f.insertedPlatform = platform
	f.insertedActor = actorID
	return f.insertErr
}

func (f *fakeTracker) IncrementCount(_ context.Context, targetUserID, platform string) error {
	f.incremented = true
	return f.incrementErr
}

func newShareRouter(tracker Tracker, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if userID != "" {
		r.Use(func(c *gin.Context) {
			c.Set(auth.CtxUserID, userID)
			c.Next()
		})
	}
	Register(r.Group("/api"), tracker, zerolog.Nop())
	return r
}

func postShare(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/profile/share-progress", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestShareProgress_MissingFields(t *testing.T) {
	tracker := &fakeTracker{}
	r := newShareRouter(tracker, "")

	for _, body := range []string{`{}`, `{"platform":"twitter"}`, `{"userId":"u1"}`} {
		w := postShare(r, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.Contains(t, w.Body.String(), "Platform and userId are required")
	}
	assert.Empty(t, tracker.insertedTarget, "no write should happen on validation failure")
}

func TestShareProgress_AnonymousActor(t *testing.T) {
	tracker := &fakeTracker{}
	w := postShare(newShareRouter(tracker, ""), `{"platform":"twitter","userId":"target-1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Equal(t, "target-1", tracker.insertedTarget)
	assert.Equal(t, "twitter", tracker.insertedPlatform)
	assert.Nil(t, tracker.insertedActor)
	assert.True(t, tracker.incremented)
}

func TestShareProgress_AuthenticatedActor(t *testing.T) {
	tracker := &fakeTracker{}
	w := postShare(newShareRouter(tracker, "actor-9"), `{"platform":"farcaster","userId":"target-1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, tracker.insertedActor)
	assert.Equal(t, "actor-9", *tracker.insertedActor)
}

func TestShareProgress_WriteFailuresNeverSurface(t *testing.T) {
	cases := []struct {
		name    string
		tracker *fakeTracker
	}{
		{"insert fails", &fakeTracker{insertErr: fmt.Errorf("db down")}},
		{"increment fails", &fakeTracker{incrementErr: fmt.Errorf("rpc missing")}},
		{"both fail", &fakeTracker{insertErr: fmt.Errorf("db down"), incrementErr: fmt.Errorf("rpc missing")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postShare(newShareRouter(tc.tracker, ""), `{"platform":"twitter","userId":"target-1"}`)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"success":true`)
			// Both writes are still attempted even when the first fails.
			assert.True(t, tc.tracker.incremented)
		})
	}
}
