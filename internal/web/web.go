// Package web embeds the browser and phone capture interfaces so the binary
// is self-contained.
package web

import "embed"

//go:embed static
var FS embed.FS
