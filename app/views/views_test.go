package views

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates(t *testing.T) {
	files, err := fs.Glob(Templates(), "*.html")
	require.NoError(t, err)
	assert.Contains(t, files, "layout.html")
	assert.Len(t, files, 10)

	data, err := fs.ReadFile(Templates(), "layout.html")
	require.NoError(t, err)
	assert.Contains(t, string(data), `{{define "layout"}}`)
}
