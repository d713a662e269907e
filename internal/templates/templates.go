// Package templates embeds the HTML views and e-mail bodies.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
