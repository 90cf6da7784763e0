package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/hourglass/pkg/httpx"
	"github.com/ghuser/hourglass/pkg/logger"
)

const sessionName = "hourglass_session"
const sessionUserIDKey = "user_id"

// SessionRevoker is implemented by session stores that can end every session
// of a user at once.
type SessionRevoker interface {
	RevokeUser(ctx context.Context, userID uuid.UUID) error
}

var _ SessionRevoker = (*RedisStore)(nil)

// RequireAuth is a chi middleware that authenticates the caller by bearer token
// or, when no Authorization header is present, by session cookie. The user ID
// is injected into the request context.
// Returns 401 Unauthorized when neither credential yields a valid user ID.
//
// After this middleware, handlers can safely call auth.UserIDFromCtx(r.Context()).
func RequireAuth(store sessions.Store, tokens *TokenIssuer, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				userID uuid.UUID
				ok     bool
			)
			if header := r.Header.Get("Authorization"); header != "" {
				userID, ok = fromBearer(r, header, tokens, log)
			} else {
				userID, ok = fromSession(r, store, log)
			}
			if !ok {
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func fromBearer(r *http.Request, header string, tokens *TokenIssuer, log logger.Logger) (uuid.UUID, bool) {
	if tokens == nil {
		return uuid.Nil, false
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		log.WarnContext(r.Context(), "malformed authorization header")
		return uuid.Nil, false
	}
	userID, err := tokens.Parse(token)
	if err != nil {
		log.WarnContext(r.Context(), "invalid bearer token", "error", err)
		return uuid.Nil, false
	}
	return userID, true
}

func fromSession(r *http.Request, store sessions.Store, log logger.Logger) (uuid.UUID, bool) {
	if store == nil {
		return uuid.Nil, false
	}
	session, err := store.Get(r, sessionName)
	if err != nil {
		log.WarnContext(r.Context(), "invalid session cookie", "error", err)
		return uuid.Nil, false
	}

	userIDStr, ok := session.Values[sessionUserIDKey].(string)
	if !ok || userIDStr == "" {
		log.WarnContext(r.Context(), "session missing user_id")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		log.WarnContext(r.Context(), "invalid user_id in session", "user_id", userIDStr, "error", err)
		return uuid.Nil, false
	}
	return userID, true
}

// StartSession stores userID in the session cookie.
func StartSession(w http.ResponseWriter, r *http.Request, store sessions.Store, userID uuid.UUID) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return err
	}
	session.Values[sessionUserIDKey] = userID.String()
	return session.Save(r, w)
}

// EndSession deletes the session and expires its cookie.
func EndSession(w http.ResponseWriter, r *http.Request, store sessions.Store) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return err
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
