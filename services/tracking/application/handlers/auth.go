package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ghuser/hourglass/pkg/auth"
	"github.com/ghuser/hourglass/pkg/errhttp"
	"github.com/ghuser/hourglass/pkg/httpx"
	pkgvalidator "github.com/ghuser/hourglass/pkg/validator"
	domain "github.com/ghuser/hourglass/services/tracking/domain"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password string `json:"password" validate:"required,max=72" example:"correct-horse-battery"`
} // @name LoginRequest

// LoginResponse carries the bearer token and the logged-in user. The session
// cookie is set as well when sessions are enabled.
type LoginResponse struct {
	Token     string       `json:"token,omitempty"      example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt *time.Time   `json:"expires_at,omitempty" example:"2024-01-16T10:30:00Z"`
	User      UserResponse `json:"user"`
} // @name LoginResponse

// Login verifies credentials, starts a session and issues a bearer token.
//
//	@Summary	Log in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		LoginRequest	true	"Credentials"
//	@Success	200		{object}	LoginResponse
//	@Failure	400		{object}	errhttp.ErrorResponse
//	@Failure	401		{object}	errhttp.ErrorResponse
//	@Failure	422		{object}	errhttp.ErrorResponse
//	@Router		/auth/login [post]
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[LoginRequest](w, r)
	if !ok {
		return
	}
	sess, err := h.svc.Auth.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		h.log.WarnContext(r.Context(), "login rejected")
		errhttp.WriteError(w, err)
		return
	}
	if err != nil {
		h.readFault(w, r, "login", err)
		return
	}

	if h.store != nil {
		if err := auth.StartSession(w, r, h.store, sess.User.ID.UUID); err != nil {
			h.readFault(w, r, "session", err)
			return
		}
	}

	resp := LoginResponse{Token: sess.Token, User: toUserResponse(sess.User)}
	if sess.Token != "" {
		resp.ExpiresAt = &sess.ExpiresAt
	}
	h.log.InfoContext(r.Context(), "user logged in", "user_id", sess.User.ID)
	httpx.JSON(w, http.StatusOK, resp)
}

// Logout ends the session. Bearer tokens stay valid until they expire.
//
//	@Summary	Log out
//	@Tags		auth
//	@Success	204
//	@Router		/auth/logout [post]
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		if err := auth.EndSession(w, r, h.store); err != nil {
			h.readFault(w, r, "session", err)
			return
		}
	}
	httpx.NoContent(w)
}
