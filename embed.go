package termsite

import "embed"

const blogCSS = "blog.css"

// EmbeddedAssets contains static assets shipped with termsite: blog.css,
// the stylesheet for generated post pages.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
