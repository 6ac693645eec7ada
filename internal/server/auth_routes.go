package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tomuthu-engineer/moibook/internal/form"
	"github.com/tomuthu-engineer/moibook/internal/model"
)

type loginData struct {
	Mobile string
	// OtpSent switches the page to the second step.
	OtpSent bool
	Errors  *form.ValidationError
}

func (s *Server) loginPageHandler(c echo.Context) error {
	if currentSession(c).Valid(s.now()) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return s.render(c, http.StatusOK, "login.html", "Sign in", loginData{}, nil)
}

func (s *Server) requestOTPHandler(c echo.Context) error {
	var dto model.RequestOTPDTO
	if err := c.Bind(&dto); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed request")
	}
	if err := c.Validate(&dto); err != nil {
		ve, _ := form.AsValidationError(err)
		return s.render(c, http.StatusUnprocessableEntity, "login.html", "Sign in", loginData{Mobile: dto.Mobile, Errors: ve}, nil)
	}

	if err := s.backend.RequestOTP(c.Request().Context(), dto.Mobile); err != nil {
		s.backendFailed(c, "request-otp", err)
		return s.render(c, http.StatusBadGateway, "login.html", "Sign in", loginData{Mobile: dto.Mobile},
			&flash{Kind: flashError, Message: "Could not send the OTP. Please try again."})
	}

	return s.render(c, http.StatusOK, "login.html", "Enter OTP", loginData{Mobile: dto.Mobile, OtpSent: true},
		&flash{Kind: flashSuccess, Message: "OTP sent to " + dto.Mobile})
}

func (s *Server) verifyOTPHandler(c echo.Context) error {
	var dto model.VerifyOTPDTO
	if err := c.Bind(&dto); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed request")
	}
	if err := c.Validate(&dto); err != nil {
		ve, _ := form.AsValidationError(err)
		return s.render(c, http.StatusUnprocessableEntity, "login.html", "Enter OTP", loginData{Mobile: dto.Mobile, OtpSent: true, Errors: ve}, nil)
	}

	ctx := c.Request().Context()
	tokens, err := s.backend.VerifyOTP(ctx, dto.Mobile, dto.Otp)
	if err != nil {
		s.backendFailed(c, "verify-otp", err)
		return s.render(c, http.StatusBadGateway, "login.html", "Enter OTP", loginData{Mobile: dto.Mobile, OtpSent: true},
			&flash{Kind: flashError, Message: "OTP verification failed. Please try again."})
	}

	token, session, err := s.sessions.Start(ctx, dto.Mobile, tokens)
	if err != nil {
		slog.ErrorContext(ctx, "start session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not sign you in")
	}

	s.setSessionCookie(c, token, session)
	setFlash(c, flashSuccess, "Signed in.")
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) logoutHandler(c echo.Context) error {
	if cookie, err := c.Cookie(s.cookies.CookieName); err == nil {
		if err := s.sessions.End(c.Request().Context(), cookie.Value); err != nil {
			slog.ErrorContext(c.Request().Context(), "end session", "error", err)
		}
	}
	s.clearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/")
}
