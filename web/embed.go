// Package web holds embedded static assets for vite.
package web

import "embed"

// StaticFS contains the landing page and its assets.
//
//go:embed static
var StaticFS embed.FS
