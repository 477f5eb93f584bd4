// Package server serves the conference site straight from its data, for
// previewing changes without a build.
package server

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"impractical.co/miniconf/internal/logging"
	"impractical.co/miniconf/internal/pages"
	"impractical.co/miniconf/internal/render"
	"impractical.co/miniconf/internal/sitedata"
)

// Options control what a Server serves.
type Options struct {
	// Data is the site's data directory.
	Data fs.FS

	// Templates are the page templates. When nil, the templates compiled
	// into the binary are used.
	Templates fs.FS

	// Static is served under /static/. Optional.
	Static fs.FS

	// Debounce is how long Watch waits for changes to settle before
	// reloading. Defaults to DefaultDebounce.
	Debounce time.Duration
}

// Server is an http.Handler serving the pages of the site. Every request is
// answered from one loaded snapshot of the data; Reload swaps in a new one
// without disturbing requests in flight.
type Server struct {
	opts   Options
	router atomic.Pointer[pages.Router]
	static http.Handler
	logger *slog.Logger
}

// New loads the site data and returns a Server for it. Load errors are
// returned, and nothing is served. Requests are logged to the logger on ctx.
func New(ctx context.Context, opts Options) (*Server, error) {
	if opts.Templates == nil {
		opts.Templates = pages.DefaultTemplates()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	srv := &Server{
		opts:   opts,
		logger: logging.FromContext(ctx),
	}
	if opts.Static != nil {
		srv.static = http.StripPrefix("/static/", http.FileServerFS(opts.Static))
	}
	if err := srv.Reload(ctx); err != nil {
		return nil, err
	}
	return srv, nil
}

// Reload loads the site data again and, if it loads without error, starts
// serving it. When it doesn't, the data already being served is kept.
func (s *Server) Reload(ctx context.Context) error {
	data, err := sitedata.Load(ctx, s.opts.Data)
	if err != nil {
		return err
	}
	s.router.Store(pages.NewRouter(pages.New(data, s.opts.Templates)))
	return nil
}

// Site returns the Site currently being served.
func (s *Server) Site() *pages.Site {
	return s.router.Load().Site()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("path", r.URL.Path)
	ctx := logging.WithLogger(r.Context(), log)

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed.", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path == "/" {
		http.Redirect(w, r, "/index.html", http.StatusFound)
		return
	}
	if strings.HasPrefix(r.URL.Path, "/static/") {
		if s.static == nil {
			s.notFound(ctx, w, r)
			return
		}
		s.static.ServeHTTP(w, r)
		return
	}

	router := s.router.Load()
	doc, err := router.Route(ctx, r.URL.Path)
	if errors.Is(err, sitedata.ErrNotFound) {
		s.notFound(ctx, w, r)
		return
	}
	if err != nil {
		log.ErrorContext(ctx, "error routing request", "error", err)
		s.serverError(ctx, w, router.Site(), err)
		return
	}
	var buf bytes.Buffer
	if err := doc.Write(ctx, &buf); err != nil {
		log.ErrorContext(ctx, "error rendering document", "error", err)
		s.serverError(ctx, w, router.Site(), err)
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		log.DebugContext(ctx, "error writing response", "error", err)
	}
}

func (s *Server) notFound(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	site := s.router.Load().Site()
	var buf bytes.Buffer
	if err := render.Execute(ctx, &buf, site, site.NotFoundPage(ctx, r.URL.Path)); err != nil {
		logging.FromContext(ctx).ErrorContext(ctx, "error rendering not found page", "error", err)
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = buf.WriteTo(w)
}

func (s *Server) serverError(ctx context.Context, w http.ResponseWriter, site *pages.Site, err error) {
	var buf bytes.Buffer
	render.Render(ctx, &buf, site, site.ServerErrorPage(ctx, err))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = buf.WriteTo(w)
}
