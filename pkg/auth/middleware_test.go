package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/hourglass/pkg/config"
	"github.com/ghuser/hourglass/pkg/logger"
)

// newTestStore returns a gorilla CookieStore (no Redis required) for unit tests.
// In production the RedisStore is used; the sessions.Store interface is identical.
func newTestStore() sessions.Store {
	return sessions.NewCookieStore(
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
	)
}

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer("test-secret-must-be-long-enough-32b", "hourglass", time.Hour)
}

// newTestLogger creates a logger that only emits errors.
func newTestLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

// requestWithCookies builds a fresh request carrying the cookies written to w.
func requestWithCookies(w *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/time-entries", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

// sessionWith writes a session holding values and returns a request carrying its cookie.
func sessionWith(t *testing.T, store sessions.Store, values map[any]any) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/time-entries", nil)
	w := httptest.NewRecorder()
	session, err := store.Get(r, sessionName)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	for k, v := range values {
		session.Values[k] = v
	}
	if err := session.Save(r, w); err != nil {
		t.Fatalf("save session: %v", err)
	}
	return requestWithCookies(w)
}

// captureUserID returns a handler recording the context user ID.
func captureUserID(got *uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, _ = UserIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_ValidSession(t *testing.T) {
	store := newTestStore()
	userID := uuid.New()

	r := sessionWith(t, store, map[any]any{sessionUserIDKey: userID.String()})
	w := httptest.NewRecorder()
	var got uuid.UUID
	RequireAuth(store, newTestIssuer(), newTestLogger())(captureUserID(&got)).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got != userID {
		t.Fatalf("expected user %v in context, got %v", userID, got)
	}
}

func TestRequireAuth_ValidBearer(t *testing.T) {
	issuer := newTestIssuer()
	userID := uuid.New()
	token, _, err := issuer.Issue(userID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	var got uuid.UUID
	RequireAuth(newTestStore(), issuer, newTestLogger())(captureUserID(&got)).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got != userID {
		t.Fatalf("expected user %v in context, got %v", userID, got)
	}
}

func TestRequireAuth_Rejects(t *testing.T) {
	store := newTestStore()

	tests := []struct {
		name  string
		build func(t *testing.T) *http.Request
	}{
		{"no credentials", func(*testing.T) *http.Request {
			return httptest.NewRequest(http.MethodPost, "/api/time-entries", nil)
		}},
		{"session without user_id", func(t *testing.T) *http.Request {
			return sessionWith(t, store, nil)
		}},
		{"session with invalid user_id", func(t *testing.T) *http.Request {
			return sessionWith(t, store, map[any]any{sessionUserIDKey: "not-a-valid-uuid"})
		}},
		{"non-bearer authorization", func(*testing.T) *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
			return r
		}},
		{"invalid bearer token", func(*testing.T) *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			r.Header.Set("Authorization", "Bearer not.a.token")
			return r
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler should not be called")
			})
			w := httptest.NewRecorder()
			RequireAuth(store, newTestIssuer(), newTestLogger())(next).ServeHTTP(w, tt.build(t))
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestStartAndEndSession(t *testing.T) {
	store := newTestStore()
	userID := uuid.New()

	w := httptest.NewRecorder()
	if err := StartSession(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), store, userID); err != nil {
		t.Fatalf("start session: %v", err)
	}

	var got uuid.UUID
	rec := httptest.NewRecorder()
	RequireAuth(store, newTestIssuer(), newTestLogger())(captureUserID(&got)).ServeHTTP(rec, requestWithCookies(w))
	if got != userID {
		t.Fatalf("expected session user %v, got %v", userID, got)
	}

	out := httptest.NewRecorder()
	if err := EndSession(out, requestWithCookies(w), store); err != nil {
		t.Fatalf("end session: %v", err)
	}
	cookies := out.Result().Cookies()
	if len(cookies) == 0 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected an expiring cookie, got %+v", cookies)
	}
}
