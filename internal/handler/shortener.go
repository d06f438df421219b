package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/joestump/vite/internal/links"
	"github.com/joestump/vite/internal/metrics"
)

// ShortenerHandler serves the encode, decode, determine and redirect endpoints.
type ShortenerHandler struct {
	resolver *links.Resolver
	log      *zap.Logger
}

// NewShortenerHandler creates a new ShortenerHandler.
func NewShortenerHandler(res *links.Resolver, log *zap.Logger) *ShortenerHandler {
	return &ShortenerHandler{resolver: res, log: log}
}

// Encode serves GET /encode?value=.
//
// @Summary      Shorten a URL or text
// @Description  Stores the value and returns its short link. Business errors are returned with status 200.
// @Tags         Links
// @Produce      json
// @Param        value  query     string  true  "URL or text to shorten"
// @Success      200    {object}  EncodeResponse
// @Failure      422    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /encode [get]
func (h *ShortenerHandler) Encode(w http.ResponseWriter, r *http.Request) {
	value, ok := requireParam(w, r, "value")
	if !ok {
		return
	}

	short, err := h.resolver.Encode(r.Context(), value)
	if err != nil {
		metrics.EncodesTotal.WithLabelValues(h.status(err)).Inc()
		h.fail(w, r, err)
		return
	}
	metrics.EncodesTotal.WithLabelValues(metrics.StatusOK).Inc()
	metrics.LinksTotal.Inc()
	writeJSON(w, http.StatusOK, EncodeResponse{URL: short})
}

// Decode serves GET /decode?url=. It never counts a click.
//
// @Summary      Look up a short link
// @Description  Returns the stored value and its click count. The reserved zero link reports clicks -1.
// @Tags         Links
// @Produce      json
// @Param        url  query     string  true  "Short link or identifier"
// @Success      200  {object}  links.Result
// @Failure      422  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /decode [get]
func (h *ShortenerHandler) Decode(w http.ResponseWriter, r *http.Request) {
	shortURL, ok := requireParam(w, r, "url")
	if !ok {
		return
	}

	res, err := h.resolver.Decode(r.Context(), shortURL)
	if err != nil {
		metrics.DecodesTotal.WithLabelValues(h.status(err)).Inc()
		h.fail(w, r, err)
		return
	}
	if res.Clicks == links.ZeroClicks {
		metrics.DecodesTotal.WithLabelValues(metrics.StatusZero).Inc()
	} else {
		metrics.DecodesTotal.WithLabelValues(metrics.StatusOK).Inc()
	}
	writeJSON(w, http.StatusOK, res)
}

// Determine serves GET /determine?query= by redirecting to /decode or
// /encode depending on whether the query starts with this service's address.
//
// @Summary      Route a query to encode or decode
// @Tags         Links
// @Param        query  query  string  true  "URL, text or short link"
// @Success      307    "Redirect to /decode or /encode"
// @Failure      422    {object}  ErrorResponse
// @Router       /determine [get]
func (h *ShortenerHandler) Determine(w http.ResponseWriter, r *http.Request) {
	query, ok := requireParam(w, r, "query")
	if !ok {
		return
	}

	target := "/encode?" + url.Values{"value": {query}}.Encode()
	if h.resolver.Determine(query) == links.RouteDecode {
		target = "/decode?" + url.Values{"url": {query}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

// Redirect serves GET /{short-id} and its /redirect/ and domain-prefixed
// variants. URL values get a permanent redirect. Text values are sent to the
// decode display.
//
// @Summary      Follow a short link
// @Description  Counts a click and redirects. Text values are redirected to /decode.
// @Tags         Links
// @Produce      json
// @Param        id  path  string  true  "Short identifier, optionally prefixed with the service address"
// @Success      301  "Redirect to the stored URL"
// @Success      307  "Redirect to /decode for text values"
// @Failure      500  {object}  ErrorResponse
// @Router       /redirect/{id} [get]
func (h *ShortenerHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() { metrics.RedirectDuration.Observe(time.Since(start).Seconds()) }()

	target, err := h.resolver.Redirect(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		metrics.RedirectsTotal.WithLabelValues(h.status(err)).Inc()
		h.fail(w, r, err)
		return
	}

	if !target.IsURL() {
		metrics.RedirectsTotal.WithLabelValues(metrics.StatusText).Inc()
		http.Redirect(w, r, "/decode?"+url.Values{"url": {target.ID}}.Encode(), http.StatusTemporaryRedirect)
		return
	}
	metrics.RedirectsTotal.WithLabelValues(metrics.StatusOK).Inc()
	http.Redirect(w, r, target.Location, http.StatusMovedPermanently)
}

// fail writes business errors as 200 payloads and everything else as a 500.
func (h *ShortenerHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	msg, ok := publicMessage(err)
	if ok {
		writeError(w, http.StatusOK, msg)
		return
	}
	h.log.Error("store failure",
		zap.String("request_id", RequestIDFromContext(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, msg)
}

func (h *ShortenerHandler) status(err error) string {
	switch {
	case errors.Is(err, links.ErrNotFound):
		return metrics.StatusNotFound
	case errors.Is(err, links.ErrEmptyValue),
		errors.Is(err, links.ErrEmptyURL),
		errors.Is(err, links.ErrInvalidURL),
		errors.Is(err, links.ErrSelfReference):
		return metrics.StatusInvalid
	}
	return metrics.StatusError
}

// requireParam returns the query parameter name. A missing parameter is a
// malformed request and gets a 422; an empty one is passed through.
func requireParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	q := r.URL.Query()
	if !q.Has(name) {
		writeError(w, http.StatusUnprocessableEntity, "Missing required query parameter: "+name)
		return "", false
	}
	return q.Get(name), true
}
