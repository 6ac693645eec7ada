package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomuthu-engineer/moibook/internal/api"
	"github.com/tomuthu-engineer/moibook/internal/auth"
	"github.com/tomuthu-engineer/moibook/internal/config"
	"github.com/tomuthu-engineer/moibook/internal/database"
)

type Server struct {
	port int

	db       database.Service
	sessions *auth.Sessions
	backend  *api.Client
	cookies  config.SessionConfig

	now func() time.Time
}

func New(cfg *config.Config, db database.Service) *Server {
	return &Server{
		port:     cfg.Server.Port,
		db:       db,
		sessions: auth.NewSessions(db, auth.NewKeyring(cfg.Session.Secret), cfg.Session.TTL),
		backend:  api.New(cfg.Backend),
		cookies:  cfg.Session,
		now:      time.Now,
	}
}

func NewServer(cfg *config.Config, db database.Service) *http.Server {
	newServer := New(cfg, db)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", newServer.port),
		Handler:      newServer.RegisterRoutes(),
		IdleTimeout:  cfg.Server.IdleTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return server
}
