package auth

import (
	"net/http"
	"time"

	"github.com/frahmantamala/workforce-portal/internal"
	"github.com/frahmantamala/workforce-portal/internal/transport"
	"github.com/frahmantamala/workforce-portal/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service      ServiceAPI
	SecureCookie bool
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI, secureCookie bool) *Handler {
	return &Handler{
		BaseHandler:  baseHandler,
		Service:      svc,
		SecureCookie: secureCookie,
	}
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		return err
	}

	session, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		return err
	}

	http.SetCookie(w, h.sessionCookie(session.Token, session.ExpiresAt))
	h.WriteJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		User:    session.User,
		Token:   session.Token,
	})
	return nil
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so this only
// drops the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, h.sessionCookie("", time.Unix(0, 0)))
	h.WriteJSON(w, http.StatusOK, transport.Success())
	return nil
}

// Me handles GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) error {
	id, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		return internal.ErrMissingToken
	}

	u, err := h.Service.Me(r.Context(), id.UserID)
	if err != nil {
		return err
	}

	h.WriteJSON(w, http.StatusOK, MeResponse{Authenticated: true, User: u})
	return nil
}

// AuthMiddleware requires a valid session token from the cookie or, failing
// that, the bearer header, and stores the caller identity in the context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.extractToken(r)
		if token == "" {
			h.HandleServiceError(w, r, internal.ErrMissingToken)
			return
		}

		claims, err := h.Service.ValidateToken(token)
		if err != nil {
			logger.From(r.Context()).Debug("token validation failed", "error", err)
			h.HandleServiceError(w, r, err)
			return
		}

		ctx := internal.ContextWithIdentity(r.Context(), claims.Identity())
		ctx = logger.With(ctx, "user_id", claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) extractToken(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return h.ExtractTokenFromHeader(r)
}

func (h *Handler) sessionCookie(value string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		c.MaxAge = -1
	} else {
		c.MaxAge = int(time.Until(expires).Seconds())
	}
	return c
}
