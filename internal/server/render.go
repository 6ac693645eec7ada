package server

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tomuthu-engineer/moibook/internal/model"
)

// Renderer executes one template set per page, each parsed together with the
// shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"amount": func(v float64) string { return fmt.Sprintf("₹%.2f", v) },
}

func NewRenderer(fsys fs.FS) (*Renderer, error) {
	names, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		if name == "layout.html" {
			continue
		}
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(fsys, "layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("no template %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

type flashKind string

const (
	flashSuccess flashKind = "success"
	flashError   flashKind = "error"

	flashCookie = "moibook_flash"
)

type flash struct {
	Kind    flashKind
	Message string
}

// page is what every template receives.
type page struct {
	Title   string
	Session *model.AuthSession
	Flash   *flash
	Data    any
}

// setFlash leaves a one-shot notification for the next rendered page.
func setFlash(c echo.Context, kind flashKind, message string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(string(kind) + ":" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func popFlash(c echo.Context) *flash {
	cookie, err := c.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	c.SetCookie(&http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(raw, ":")
	if !ok || message == "" {
		return nil
	}
	return &flash{Kind: flashKind(kind), Message: message}
}

// render writes a page. A notification passed in now replaces any pending one.
func (s *Server) render(c echo.Context, status int, name, title string, data any, now *flash) error {
	f := popFlash(c)
	if now != nil {
		f = now
	}
	return c.Render(status, name, page{
		Title:   title,
		Session: currentSession(c),
		Flash:   f,
		Data:    data,
	})
}
