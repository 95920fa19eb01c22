package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/topi314/cobot-tools/server/cobot"
)

//go:embed static
var static embed.FS

func New(cfg Config) (*Server, error) {
	var staticFS http.FileSystem
	if cfg.Dev {
		// serve assets from disk so the widget can be reworked without restarts
		root, err := os.OpenRoot("server/")
		if err != nil {
			return nil, fmt.Errorf("failed to open static directory: %w", err)
		}
		staticFS = http.FS(root.FS())
	} else {
		staticFS = http.FS(static)
	}

	httpClient := &http.Client{}

	s := &Server{
		Cfg:        cfg,
		HttpClient: httpClient,
		Cobot:      cobot.New(cfg.Cobot, httpClient),
		StaticFS:   staticFS,
	}

	if cfg.Dev {
		s.Reload = newReloadNotifier()
		s.stopWatcher = startDevWatcher("server/static", s.Reload)
	}

	return s, nil
}

type Server struct {
	Cfg        Config
	HttpClient *http.Client
	Cobot      *cobot.Client
	StaticFS   http.FileSystem
	Reload     *ReloadNotifier

	server      *http.Server
	stopWatcher context.CancelFunc
}

func (s *Server) Start(handler http.Handler) {
	s.server = &http.Server{
		Addr:    s.Cfg.Server.Addr,
		Handler: handler,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", slog.Any("err", err))
		}
	}()
}

func (s *Server) Stop() {
	if s.stopWatcher != nil {
		s.stopWatcher()
	}
	if s.Reload != nil {
		s.Reload.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.Cfg.Server.ShutdownTimeout.Duration())
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", slog.Any("err", err))
	}
}
