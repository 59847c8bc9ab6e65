package web

import "embed"

// ViewsFS embeds HTML templates for server-side rendering.
//
//go:embed views/*.html
var ViewsFS embed.FS
