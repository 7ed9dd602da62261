package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rashedul-dev/Qourio-client/internal/client/models"
)

// ---- in-memory token store ----

type memTokens struct {
	mu      sync.Mutex
	access  string
	refresh string
}

func (m *memTokens) AccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, nil
}

func (m *memTokens) RefreshToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh, nil
}

func (m *memTokens) SetTokens(ctx context.Context, access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = access, refresh
	return nil
}

func (m *memTokens) Clear(ctx context.Context) error {
	return m.SetTokens(ctx, "", "")
}

// ---- helpers ----

func writeEnvelope(w http.ResponseWriter, status int, msg string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"statusCode": status,
		"success":    status >= 200 && status <= 299,
		"message":    msg,
		"data":       data,
	})
}

func newTestClient(t *testing.T, h http.Handler, tokens TokenStore) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, 5*time.Second, tokens, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// ---- tests ----

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New("not a url", time.Second, nil, nil)
	require.Error(t, err)
	_, err = New("/relative/only", time.Second, nil, nil)
	require.Error(t, err)
}

func TestLogin_StoresTokens(t *testing.T) {
	tokens := &memTokens{}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "s@x.com", body["email"])

		writeEnvelope(w, 200, "Logged in", map[string]any{
			"accessToken":  "acc-1",
			"refreshToken": "ref-1",
			"user":         map[string]any{"_id": "u1", "email": "s@x.com", "role": "SENDER"},
		})
	}), tokens)

	res, err := c.Login(context.Background(), "s@x.com", "secret")
	require.NoError(t, err)
	require.Equal(t, models.RoleSender, res.User.Role)
	require.Equal(t, "acc-1", tokens.access)
	require.Equal(t, "ref-1", tokens.refresh)
}

func TestLogin_KnownMessagesMapToSentinels(t *testing.T) {
	tests := []struct {
		msg  string
		want error
	}{
		{"User does not exist", ErrUserNotFound},
		{"Password does not match", ErrPasswordMismatch},
		{"User is not verified", ErrUserNotVerified},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, http.StatusBadRequest, tt.msg, nil)
			}), &memTokens{})

			_, err := c.Login(context.Background(), "s@x.com", "bad")
			require.ErrorIs(t, err, tt.want)
			require.Equal(t, tt.msg, ServerMessage(err, "fallback"), "server text must pass through")
		})
	}
}

func TestDo_RefreshOnceOn401(t *testing.T) {
	tokens := &memTokens{access: "expired", refresh: "ref-1"}
	var meCalls, refreshCalls int

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user/me":
			meCalls++
			if r.Header.Get("Authorization") != "Bearer fresh" {
				writeEnvelope(w, http.StatusUnauthorized, "jwt expired", nil)
				return
			}
			writeEnvelope(w, 200, "", map[string]any{"_id": "u1", "email": "s@x.com", "role": "SENDER"})
		case "/auth/refresh-token":
			refreshCalls++
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "ref-1", body["refreshToken"])
			writeEnvelope(w, 200, "", map[string]any{"accessToken": "fresh", "refreshToken": "ref-2"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}), tokens)

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "s@x.com", u.Email)
	require.Equal(t, 2, meCalls, "original request retried exactly once")
	require.Equal(t, 1, refreshCalls)
	require.Equal(t, "fresh", tokens.access)
	require.Equal(t, "ref-2", tokens.refresh, "rotated refresh token persisted")
}

func TestDo_FailedRefreshSurfacesUnauthorized(t *testing.T) {
	tokens := &memTokens{access: "expired", refresh: "dead"}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user/me":
			writeEnvelope(w, http.StatusUnauthorized, "jwt expired", nil)
		case "/auth/refresh-token":
			writeEnvelope(w, http.StatusUnauthorized, "refresh token expired", nil)
		}
	}), tokens)

	_, err := c.Me(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

// expiringTokens adds the expiry capability to the in-memory store.
type expiringTokens struct {
	memTokens
	expiresSoon bool
}

func (m *expiringTokens) AccessTokenExpiresWithin(ctx context.Context, d time.Duration) bool {
	return m.expiresSoon
}

func TestDo_ProactiveRefreshBeforeExpiry(t *testing.T) {
	tokens := &expiringTokens{expiresSoon: true}
	tokens.access, tokens.refresh = "almost-expired", "ref-1"
	var refreshCalls int

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user/me":
			require.Equal(t, "Bearer fresh", r.Header.Get("Authorization"),
				"the request must carry the rotated token, not the expiring one")
			writeEnvelope(w, 200, "", map[string]any{"_id": "u1", "email": "s@x.com", "role": "SENDER"})
		case "/auth/refresh-token":
			refreshCalls++
			writeEnvelope(w, 200, "", map[string]any{"accessToken": "fresh", "refreshToken": "ref-2"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}), tokens)

	_, err := c.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, refreshCalls, "the pair rotates once, before the request")
	require.Equal(t, "ref-2", tokens.refresh)
}

func TestDo_NoProactiveRefreshWhileTokenFresh(t *testing.T) {
	tokens := &expiringTokens{expiresSoon: false}
	tokens.access, tokens.refresh = "valid", "ref-1"

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user/me":
			writeEnvelope(w, 200, "", map[string]any{"_id": "u1", "email": "s@x.com", "role": "SENDER"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}), tokens)

	_, err := c.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "valid", tokens.access)
}

func TestSenderParcels_EncodesParamsAndDecodesMeta(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/parcels/me", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "TRK", q.Get("searchTerm"))
		require.Equal(t, "2", q.Get("page"))
		require.Equal(t, "10", q.Get("limit"))
		require.Equal(t, "-createdAt", q.Get("sort"))
		require.Equal(t, []string{"In-Transit"}, q["currentStatus[]"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"statusCode": 200,
			"success":    true,
			"message":    "ok",
			"meta":       map[string]int{"page": 2, "limit": 10, "total": 25, "totalPage": 3},
			"data": []map[string]any{
				{"_id": "p1", "trackingId": "TRK-1", "currentStatus": "In-Transit"},
			},
		})
	}), nil)

	rows, meta, err := c.SenderParcels(context.Background(), models.ParcelListParams{
		SearchTerm:    "TRK",
		Page:          2,
		Limit:         10,
		CurrentStatus: []models.ParcelStatus{models.StatusInTransit},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "TRK-1", rows[0].TrackingID)
	require.Equal(t, 3, meta.PageCount())
}

func TestTrackParcel_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, "Parcel not found", nil)
	}), nil)

	_, err := c.TrackParcel(context.Background(), "NOPE")
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, "Parcel not found", ServerMessage(err, ""))
}

func TestDo_NetworkFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listens anymore

	c, err := New(url, time.Second, nil, nil)
	require.NoError(t, err)

	_, err = c.Me(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLogout_ClearsTokensEvenOnServerError(t *testing.T) {
	tokens := &memTokens{access: "acc", refresh: "ref"}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh-token" {
			writeEnvelope(w, http.StatusUnauthorized, "refresh token expired", nil)
			return
		}
		writeEnvelope(w, http.StatusInternalServerError, "boom", nil)
	}), tokens)

	err := c.Logout(context.Background())
	require.Error(t, err)
	require.Empty(t, tokens.access)
	require.Empty(t, tokens.refresh)
}

func TestServerMessage_Fallback(t *testing.T) {
	require.Equal(t, "fallback", ServerMessage(context.DeadlineExceeded, "fallback"))
	require.Equal(t, "oops", ServerMessage(newError(500, "oops"), "fallback"))
}
