package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/topi314/cobot-tools/internal/middlewares"
	"github.com/topi314/cobot-tools/server"
)

type handler struct {
	*server.Server

	formatter *Formatter
	now       func() time.Time
}

func Routes(srv *server.Server) http.Handler {
	h := &handler{
		Server:    srv,
		formatter: German,
		now:       time.Now,
	}

	fileServer := http.FileServer(h.StaticFS)
	var fs http.Handler
	if srv.Cfg.Dev {
		fs = fileServer
	} else {
		fs = middlewares.Cache(fileServer)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /health", h.Health)

	mux.HandleFunc("GET /api/member/{member_id}", h.Member)
	mux.HandleFunc("PUT /api/member/{member_id}/custom_fields", h.UpdateCustomFields)

	mux.Handle("GET /static/", fs)
	mux.Handle("HEAD /static/", fs)

	if srv.Cfg.Dev {
		mux.HandleFunc("GET /dev/reload", h.DevReload)
	}

	mux.HandleFunc("/", h.NotFound)

	return middlewares.CORS(accessLog(mux))
}

func (h *handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": h.now().Format(time.RFC3339),
	})
}

func (h *handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file, err := h.StaticFS.Open("/static/index.html")
	if err != nil {
		slog.ErrorContext(ctx, "Failed to open index page", slog.Any("err", err))
		http.Error(w, "failed to open index page", http.StatusInternalServerError)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	stat, err := file.Stat()
	if err != nil {
		slog.ErrorContext(ctx, "Failed to stat index page", slog.Any("err", err))
		http.Error(w, "failed to stat index page", http.StatusInternalServerError)
		return
	}

	http.ServeContent(w, r, "index.html", stat.ModTime(), file)
}

func (h *handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(r.Context(), w, http.StatusNotFound, errors.New("not found"))
}

// DevReload streams server-sent events that tell the browser to refresh
// whenever the watcher picks up a change on disk. The connection stays open
// until the client disconnects or the server shuts down.
func (h *handler) DevReload(w http.ResponseWriter, r *http.Request) {
	if h.Reload == nil {
		http.NotFound(w, r)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	id, ch := h.Reload.Subscribe()
	defer h.Reload.Unsubscribe(id)

	if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			if _, err := fmt.Fprint(w, "data: reload\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.InfoContext(r.Context(), "Handled request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Flush keeps SSE streaming working through the access log wrapper.
func (w *statusRecorder) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "Failed to encode response", slog.Any("err", err))
	}
}

func respondError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	respondJSON(ctx, w, status, errorResponse{
		Success: false,
		Error:   err.Error(),
	})
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
