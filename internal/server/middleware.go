package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tomuthu-engineer/moibook/internal/api"
	"github.com/tomuthu-engineer/moibook/internal/auth"
	"github.com/tomuthu-engineer/moibook/internal/model"
)

const sessionKey = "session"

// SessionMiddleware resolves the session cookie, if any, and sets the session
// on the echo Context. A stale cookie is cleared.
func (s *Server) SessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(s.cookies.CookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		session, err := s.sessions.Resolve(c.Request().Context(), cookie.Value)
		switch {
		case errors.Is(err, auth.ErrNoSession):
			s.clearSessionCookie(c)
		case err != nil:
			slog.ErrorContext(c.Request().Context(), "resolve session", "error", err)
		default:
			c.Set(sessionKey, session)
		}

		return next(c)
	}
}

// RequireSession sends visitors without a valid session to the login page.
func (s *Server) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !currentSession(c).Valid(s.now()) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return next(c)
	}
}

func currentSession(c echo.Context) *model.AuthSession {
	session, _ := c.Get(sessionKey).(*model.AuthSession)
	return session
}

// client is the backend client authenticated as the request's session.
func (s *Server) client(c echo.Context) *api.Client {
	return s.backend.WithSession(currentSession(c))
}

func (s *Server) setSessionCookie(c echo.Context, token string, session *model.AuthSession) {
	c.SetCookie(&http.Cookie{
		Name:     s.cookies.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  session.Expiry,
		HttpOnly: true,
		Secure:   s.cookies.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     s.cookies.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookies.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// backendFailed logs a failed backend call. When the backend rejected the
// session it is ended and the returned redirect should be used instead of
// re-rendering the page.
func (s *Server) backendFailed(c echo.Context, op string, err error) (redirect bool) {
	slog.ErrorContext(c.Request().Context(), "backend call failed",
		"op", op,
		"error", err,
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
	)

	if !api.IsUnauthorized(err) {
		return false
	}
	if cookie, cerr := c.Cookie(s.cookies.CookieName); cerr == nil {
		_ = s.sessions.End(c.Request().Context(), cookie.Value)
	}
	s.clearSessionCookie(c)
	setFlash(c, flashError, "Your session has expired, please sign in again.")
	return true
}
