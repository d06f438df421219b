package handler

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/joestump/vite/docs/swagger"
	"github.com/joestump/vite/internal/links"
	"github.com/joestump/vite/web"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Resolver *links.Resolver
	Store    Pinger
	Logger   *zap.Logger
}

// NewRouter assembles the chi router with all middleware and routes.
// Named routes are registered before the short-id catch-all.
func NewRouter(deps Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logger(log))
	r.Use(middleware.Recoverer)

	// Use fs.Sub so the file server sees index.html, not static/index.html.
	staticSub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("failed to sub static FS: " + err.Error())
	}
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServerFS(staticSub)))

	r.Get("/", NewLandingHandler().Index)
	r.Get("/healthz", NewHealthHandler(deps.Store, log).Healthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)

	shortener := NewShortenerHandler(deps.Resolver, log)
	r.Get("/encode", shortener.Encode)
	r.Get("/decode", shortener.Decode)
	r.Get("/determine", shortener.Determine)

	// Short-id resolver. The wildcard keeps domain-prefixed forms such as
	// /redirect/https://vite.lol/abc intact for the resolver to normalize.
	r.Get("/redirect/*", shortener.Redirect)
	r.Get("/*", shortener.Redirect)

	return r
}
