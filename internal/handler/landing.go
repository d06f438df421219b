package handler

import (
	"net/http"

	"github.com/joestump/vite/web"
)

// LandingHandler serves the public landing page.
type LandingHandler struct{}

// NewLandingHandler creates a new LandingHandler.
func NewLandingHandler() *LandingHandler { return &LandingHandler{} }

// Index serves GET /.
func (h *LandingHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, web.StaticFS, "static/index.html")
}
