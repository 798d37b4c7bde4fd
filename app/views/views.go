// Package views embeds the HTML templates.
package views

import (
	"embed"
	"io/fs"

	"github.com/go-extras/go-kit/must"
)

//go:embed templates/*.html
var embedded embed.FS

// Templates returns the embedded templates rooted at the templates directory.
func Templates() fs.FS {
	return must.Must(fs.Sub(embedded, "templates"))
}
