package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tomuthu-engineer/moibook/internal/model"
	"github.com/tomuthu-engineer/moibook/web"
)

func (s *Server) RegisterRoutes() http.Handler {
	renderer, err := NewRenderer(web.Templates())
	if err != nil {
		// templates are embedded, this only fails on a broken build
		panic(err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Validator = NewValidator()
	e.HTTPErrorHandler = s.errorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger())
	e.Use(middleware.Secure())
	e.Use(s.SessionMiddleware)

	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(web.StaticFiles()))))
	e.GET("/health", s.healthHandler)
	e.GET("/", s.homeHandler)

	e.GET("/login", s.loginPageHandler)
	e.POST("/login", s.requestOTPHandler)
	e.POST("/login/verify", s.verifyOTPHandler)
	e.POST("/logout", s.logoutHandler)

	signedIn := s.RequireSession

	e.GET("/paid-moi-entry", s.paidFormHandler, signedIn)
	e.POST("/paid-moi-entry", s.createPaidHandler, signedIn)
	e.GET("/view-all-paid-moi", s.paidListHandler, signedIn)
	e.GET("/view-all-paid-moi/download", s.paidReportHandler, signedIn)

	e.GET("/create-event", s.eventFormHandler, signedIn)
	e.POST("/create-event", s.createEventHandler, signedIn)

	e.GET("/received-moi-entry", s.eventPickerHandler, signedIn)
	e.GET("/received-moi-form/:eventId", s.receivedFormHandler, signedIn)
	e.POST("/received-moi-form/:eventId", s.createReceivedHandler, signedIn)
	e.GET("/view-all-received-moi-events", s.receivedEventsHandler, signedIn)
	e.GET("/view-all-received-moi/:eventId", s.receivedListHandler, signedIn)
	e.GET("/view-all-received-moi/:eventId/download", s.receivedReportHandler, signedIn)

	return e
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("path", v.URIPath),
				slog.Int("status", v.Status),
				slog.Duration("duration", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			slog.LogAttrs(c.Request().Context(), level, "http.request", attrs...)
			return nil
		},
	})
}

func (s *Server) healthHandler(c echo.Context) error {
	stats := s.db.Health()
	if stats["status"] != "up" {
		return c.JSON(http.StatusServiceUnavailable, stats)
	}
	return c.JSON(http.StatusOK, stats)
}

type dashboardData struct {
	Totals      model.Totals
	TotalsError bool
}

// homeHandler shows the landing page to visitors and the dashboard with both
// totals once signed in.
func (s *Server) homeHandler(c echo.Context) error {
	if !currentSession(c).Valid(s.now()) {
		return s.render(c, http.StatusOK, "landing.html", "MoiBook", nil, nil)
	}

	totals, err := s.client(c).Totals(c.Request().Context())
	if err != nil {
		if s.backendFailed(c, "totals", err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return s.render(c, http.StatusOK, "dashboard.html", "Dashboard", dashboardData{TotalsError: true},
			&flash{Kind: flashError, Message: "Could not load totals."})
	}

	return s.render(c, http.StatusOK, "dashboard.html", "Dashboard", dashboardData{Totals: totals}, nil)
}

type errorData struct {
	Code    int
	Message string
}

func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "request failed", "error", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	if rerr := s.render(c, code, "error.html", http.StatusText(code), errorData{Code: code, Message: message}, nil); rerr != nil {
		slog.ErrorContext(c.Request().Context(), "render error page", "error", rerr)
	}
}
