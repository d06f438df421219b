// Package links turns raw request strings into shortened links and back.
//
// A Resolver normalizes input by stripping the service's own address,
// decides whether the input is a short link or a new value, and goes through
// the store and the shortid codec to produce the response.
package links

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/joestump/vite/internal/shortid"
	"github.com/joestump/vite/internal/store"
)

// ZeroValue is returned for the reserved id 0, which the store never assigns.
// The reserved identifier is the encoding of 0, passed through the obfuscator
// when one is configured, so it is not necessarily "0".
const ZeroValue = "https://en.wikipedia.org/wiki/0#Computer_science"

// ZeroClicks marks a result that is not a tracked link.
const ZeroClicks = -1

var (
	// ErrEmptyValue is returned when asked to shorten an empty value.
	ErrEmptyValue = errors.New("no url or text provided")

	// ErrEmptyURL is returned when asked to decode an empty short link.
	ErrEmptyURL = errors.New("no url provided")

	// ErrInvalidURL is returned when a short link contains symbols outside the charset.
	ErrInvalidURL = errors.New("not a valid url")

	// ErrNotFound is returned when a short link does not map to a stored value.
	ErrNotFound = errors.New("no such shortened url found")

	// ErrSelfReference is returned when asked to shorten one of the service's own links.
	ErrSelfReference = errors.New("cannot shorten a link to this service")
)

// Route is the outcome of classifying a query.
type Route int

const (
	RouteEncode Route = iota
	RouteDecode
)

func (r Route) String() string {
	if r == RouteDecode {
		return "decode"
	}
	return "encode"
}

// Result is a decoded link.
type Result struct {
	Value  string `json:"value"`
	Clicks int64  `json:"clicks"`
}

// Target is where a redirect for a short link should go.
type Target struct {
	// ID is the short identifier with the service prefix removed.
	ID string
	// Location is the absolute URL to redirect to. Empty when the value is
	// plain text and should be displayed instead.
	Location string
}

// IsURL reports whether the target is a redirect rather than a text display.
func (t Target) IsURL() bool { return t.Location != "" }

// Config holds the dependencies of a Resolver.
type Config struct {
	// Domain is the full short-link prefix, e.g. "https://vite.lol/".
	Domain string
	// ShortHost is the prefix without a scheme, e.g. "vite.lol/".
	ShortHost  string
	Codec      *shortid.Codec
	Obfuscator *shortid.Obfuscator // optional
	Store      store.LinkStoreIface
}

// Resolver implements encode, decode and redirect. It holds no per-request
// state and is safe for concurrent use.
type Resolver struct {
	domain    string
	shortHost string
	codec     *shortid.Codec
	obf       *shortid.Obfuscator
	store     store.LinkStoreIface
	zeroID    string
}

// NewResolver validates cfg and returns a Resolver.
func NewResolver(cfg Config) (*Resolver, error) {
	if cfg.Domain == "" {
		return nil, errors.New("links: domain is required")
	}
	if cfg.Codec == nil {
		return nil, errors.New("links: codec is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("links: store is required")
	}
	r := &Resolver{
		domain:    cfg.Domain,
		shortHost: cfg.ShortHost,
		codec:     cfg.Codec,
		obf:       cfg.Obfuscator,
		store:     cfg.Store,
	}
	zero, err := r.shorten(0)
	if err != nil {
		return nil, fmt.Errorf("links: %w", err)
	}
	r.zeroID = zero
	return r, nil
}

// Domain returns the prefix prepended to every short identifier.
func (r *Resolver) Domain() string { return r.domain }

// hasPrefix reports whether s starts with one of the service's own addresses.
func (r *Resolver) hasPrefix(s string) bool {
	return strings.HasPrefix(s, r.domain) ||
		(r.shortHost != "" && strings.HasPrefix(s, r.shortHost))
}

// Normalize strips a leading domain or short-host prefix from s.
func (r *Resolver) Normalize(s string) string {
	if rest, ok := strings.CutPrefix(s, r.domain); ok {
		return rest
	}
	if r.shortHost != "" {
		if rest, ok := strings.CutPrefix(s, r.shortHost); ok {
			return rest
		}
	}
	return s
}

// Determine routes queries that start with the service's address to decode
// and everything else to encode. It does not validate the query.
func (r *Resolver) Determine(query string) Route {
	if r.hasPrefix(query) {
		return RouteDecode
	}
	return RouteEncode
}

// Encode stores value and returns its short link.
func (r *Resolver) Encode(ctx context.Context, value string) (string, error) {
	if value == "" {
		return "", ErrEmptyValue
	}
	if r.hasPrefix(value) {
		return "", ErrSelfReference
	}

	id, err := r.store.Insert(ctx, value)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	ident, err := r.shorten(uint64(id))
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return r.domain + ident, nil
}

// Decode returns the value and click count behind a short link without
// counting a click.
func (r *Resolver) Decode(ctx context.Context, shortURL string) (Result, error) {
	_, id, err := r.parse(shortURL)
	if err != nil {
		return Result{}, err
	}
	if id == 0 {
		return Result{Value: ZeroValue, Clicks: ZeroClicks}, nil
	}

	link, err := r.get(ctx, id)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: link.Value, Clicks: link.Clicks}, nil
}

// Redirect resolves a short link and counts one click for it. Values that do
// not look like URLs produce a Target without a Location.
func (r *Resolver) Redirect(ctx context.Context, shortURL string) (Target, error) {
	ident, id, err := r.parse(shortURL)
	if err != nil {
		return Target{}, err
	}
	if id == 0 {
		return Target{ID: ident, Location: ZeroValue}, nil
	}

	link, err := r.get(ctx, id)
	if err != nil {
		return Target{}, err
	}
	if err := r.store.IncrementClicks(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Target{}, ErrNotFound
		}
		return Target{}, fmt.Errorf("redirect: %w", err)
	}

	if !LooksLikeURL(link.Value) {
		return Target{ID: ident}, nil
	}
	return Target{ID: ident, Location: AbsoluteURL(link.Value)}, nil
}

// parse normalizes shortURL and decodes it to a store id. An id of 0 means
// the reserved zero link.
func (r *Resolver) parse(shortURL string) (string, int64, error) {
	ident := r.Normalize(shortURL)
	switch {
	case ident == "":
		return "", 0, ErrEmptyURL
	case ident == r.zeroID:
		return ident, 0, nil
	case !r.codec.Charset().Validate(ident):
		return "", 0, ErrInvalidURL
	}

	digits := ident
	if r.obf != nil {
		restored, err := r.obf.Restore(ident)
		if err != nil {
			return "", 0, ErrInvalidURL
		}
		digits = restored
	}

	n, err := r.codec.Decode(digits)
	switch {
	case errors.Is(err, shortid.ErrOverflow):
		return "", 0, ErrNotFound
	case err != nil:
		return "", 0, ErrInvalidURL
	case n > math.MaxInt64:
		return "", 0, ErrNotFound
	}
	return ident, int64(n), nil
}

func (r *Resolver) get(ctx context.Context, id int64) (*store.Link, error) {
	link, err := r.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %d: %w", id, err)
	}
	return link, nil
}

// shorten encodes id and applies the obfuscator when one is configured.
func (r *Resolver) shorten(id uint64) (string, error) {
	ident := r.codec.Encode(id)
	if r.obf == nil {
		return ident, nil
	}
	return r.obf.Transform(ident)
}
