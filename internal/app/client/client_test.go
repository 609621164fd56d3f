package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/models/dto"
	"github.com/yigit/hostelportal/internal/app/session"
	"github.com/yigit/hostelportal/internal/config"
	"github.com/yigit/hostelportal/internal/mockserver"
	"github.com/yigit/hostelportal/internal/pkg/apperrors"
	"github.com/yigit/hostelportal/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
	auth.BcryptCost = bcrypt.MinCost
}

func staticToken(token string) TokenSource {
	return TokenFunc(func() (string, error) { return token, nil })
}

func newClient(t *testing.T, baseURL string, tokens TokenSource, onUnauthorized func()) *Client {
	t.Helper()
	c, err := New(Config{
		BaseURL:        baseURL,
		Timeout:        2 * time.Second,
		Tokens:         tokens,
		OnUnauthorized: onUnauthorized,
		Logger:         zerolog.Nop(),
	})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestMissingTokenIsNeverSent(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	var cleared int32
	c := newClient(t, srv.URL, staticToken(""), func() { atomic.AddInt32(&cleared, 1) })

	_, err := c.SubmitChoices(context.Background(), "student-1", dto.SubmitChoicesRequest{})
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
	assert.Equal(t, int32(1), atomic.LoadInt32(&cleared))
}

func TestUnauthorizedResponseClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"success":false,"error":{"code":"AUTH_006","message":"Authentication failed"}}`)
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	require.NoError(t, store.Save(session.New("opaque-token", models.Student{ID: "s1"})))

	c := newClient(t, srv.URL, session.TokenSource{Store: store}, func() { _ = store.Clear() })

	_, err := c.GetEligibility(context.Background(), "s1")
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	var apiErr *apperrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, err = store.Load()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestLoginFailureDoesNotTriggerCallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Invalid student ID or password"}`)
	}))
	defer srv.Close()

	called := false
	c := newClient(t, srv.URL, nil, func() { called = true })

	_, err := c.Login(context.Background(), dto.LoginRequest{StudentID: "U1", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.EqualError(t, err, "Invalid student ID or password")
	assert.False(t, called)
}

func TestErrorBodies(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		target  error
		message string
	}{
		{"message form", http.StatusBadRequest, `{"message":"Bad choice"}`, apperrors.ErrBadRequest, "Bad choice"},
		{"error string form", http.StatusNotFound, `{"error":"Student not found"}`, apperrors.ErrResourceNotFound, "Student not found"},
		{"structured form", http.StatusConflict, `{"success":false,"error":{"code":"HOS_002","message":"Already submitted"}}`, apperrors.ErrChoicesAlreadySubmitted, "Already submitted"},
		{"payment required", http.StatusForbidden, `{"error":{"code":"HOS_001","message":"Pay first"}}`, apperrors.ErrPaymentRequired, "Pay first"},
		{"server error", http.StatusInternalServerError, `oops`, apperrors.ErrServiceUnavailable, apperrors.ErrServiceUnavailable.Error()},
		{"empty body", http.StatusForbidden, ``, apperrors.ErrPermissionDenied, apperrors.ErrPermissionDenied.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := newClient(t, srv.URL, staticToken("tok"), nil)
			_, err := c.GetStatus(context.Background(), "s1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestTransportFailureIsServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newClient(t, url, staticToken("tok"), nil)
	_, err := c.ListHostels(context.Background(), models.GenderMale, "Main")
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
}

func TestRequestHeadersAndNullChoices(t *testing.T) {
	var (
		gotAuth      string
		gotRequestID string
		gotBody      map[string]interface{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(RequestIDHeader)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `{"success":true,"message":"ok"}`)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL+"/", staticToken("tok"), nil)
	first := "h1"
	resp, err := c.SubmitChoices(context.Background(), "s1", dto.SubmitChoicesRequest{Choice1ID: &first})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Len(t, gotRequestID, 36)
	require.Contains(t, gotBody, "choice2Id")
	require.Contains(t, gotBody, "choice3Id")
	assert.Equal(t, "h1", gotBody["choice1Id"])
	assert.Nil(t, gotBody["choice2Id"])
	assert.Nil(t, gotBody["choice3Id"])
}

func TestHostelListShapes(t *testing.T) {
	for name, body := range map[string]string{
		"bare array": `[{"id":"1","name":"Ribadu Hall","gender":"Male","campus":"Main"}]`,
		"wrapped":    `{"success":true,"hostels":[{"id":"1","name":"Ribadu Hall","gender":"Male","campus":"Main"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Male", r.URL.Query().Get("gender"))
				assert.Equal(t, "Main", r.URL.Query().Get("campus"))
				_, _ = io.WriteString(w, body)
			}))
			defer srv.Close()

			c := newClient(t, srv.URL, staticToken("tok"), nil)
			hostels, err := c.ListHostels(context.Background(), models.GenderMale, "Main")
			require.NoError(t, err)
			require.Len(t, hostels, 1)
			assert.Equal(t, "Ribadu Hall", hostels[0].Name)
		})
	}
}

func TestAgainstMockBackend(t *testing.T) {
	cfg := &config.Config{}
	cfg.MockServer.JWTSecret = "test-secret"
	cfg.MockServer.TokenExpiration = time.Hour
	backend := httptest.NewServer(mockserver.New(cfg, zerolog.Nop()).Handler())
	defer backend.Close()

	store := session.NewMemoryStore()
	c := newClient(t, backend.URL+"/api", session.TokenSource{Store: store}, func() { _ = store.Clear() })
	ctx := context.Background()

	reg, err := c.Register(ctx, dto.RegisterRequest{
		Name: "Amina Yusuf", StudentID: "U21EE2002", Password: "secret1",
		Faculty: "Engineering", Department: "Electrical", Campus: "Main", Gender: "Female",
	})
	require.NoError(t, err)

	_, err = c.Register(ctx, dto.RegisterRequest{
		Name: "Amina Yusuf", StudentID: "U21EE2002", Password: "secret1",
		Faculty: "Engineering", Department: "Electrical", Campus: "Main", Gender: "Female",
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	login, err := c.Login(ctx, dto.LoginRequest{StudentID: "U21EE2002", Password: "secret1"})
	require.NoError(t, err)
	student := login.Student.ToModel()
	assert.Equal(t, reg.Student.ID, student.ID)
	require.NoError(t, store.Save(session.New(login.Token, student)))

	profile, err := c.GetProfile(ctx, "U21EE2002")
	require.NoError(t, err)
	assert.Equal(t, "Amina Yusuf", profile.Student.ToModel().Name)

	_, err = c.UpdatePaymentStatus(ctx, student.ID, true)
	require.NoError(t, err)

	elig, err := c.GetEligibility(ctx, student.ID)
	require.NoError(t, err)
	assert.True(t, elig.AllowsSubmission())

	hostels, err := c.ListHostels(ctx, student.Gender, student.Campus)
	require.NoError(t, err)
	require.NotEmpty(t, hostels)

	room, err := c.GetRoomInfo(ctx, student.ID)
	require.NoError(t, err)
	assert.False(t, room.Allocated())

	_, err = c.SubmitChoices(ctx, student.ID, dto.SubmitChoicesRequest{Choice1ID: &hostels[0].ID})
	require.NoError(t, err)

	_, err = c.SubmitChoices(ctx, student.ID, dto.SubmitChoicesRequest{Choice1ID: &hostels[0].ID})
	assert.ErrorIs(t, err, apperrors.ErrChoicesAlreadySubmitted)

	room, err = c.GetRoomInfo(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, hostels[0].Name, room.HostelName)

	stats, err := c.GetHostelStats(ctx, hostels[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.OccupiedBeds)

	rooms, err := c.ListRooms(ctx, hostels[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, rooms)

	// Another student's data is forbidden, not an auth failure
	_, err = c.GetStatus(ctx, "someone-else")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	_, err = store.Load()
	assert.NoError(t, err)
}
