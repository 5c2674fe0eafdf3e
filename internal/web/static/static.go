// Package static embeds the stylesheet so the server runs from any directory.
package static

import "embed"

// FS holds the bundled static assets
//
//go:embed *.css
var FS embed.FS
