// File: cmd/inspect_test.go
package cmd

import (
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/boxflow/api/schemas"
)

func TestGeometryCmd(t *testing.T) {
	_, htmlPath, cssPath := writeSources(t)

	t.Run("prints the border box", func(t *testing.T) {
		out, err := runCmd(t, nil, "geometry", "--html", htmlPath, "--css", cssPath, "--xpath", `//div[@id="main"]`)
		require.NoError(t, err)

		var geometry schemas.ElementGeometry
		require.NoError(t, json.Unmarshal([]byte(out), &geometry))
		assert.Equal(t, "div", geometry.TagName)
		assert.Equal(t, "main", geometry.ID)
		assert.Equal(t, "block", geometry.BoxType)
		assert.Equal(t, 8.0, geometry.X)
		assert.Equal(t, 8.0, geometry.Y)
		assert.Equal(t, int64(784), geometry.Width)
		assert.Equal(t, int64(44), geometry.Height)
		assert.Len(t, geometry.Vertices, 8)
	})

	t.Run("hidden element is not rendered", func(t *testing.T) {
		_, err := runCmd(t, nil, "geometry", "--html", htmlPath, "--css", cssPath, "--xpath", `//p`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not rendered")
	})

	t.Run("xpath flag is required", func(t *testing.T) {
		_, err := runCmd(t, nil, "geometry", "--html", htmlPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"xpath" not set`)
	})
}

func TestDumpCmd(t *testing.T) {
	_, htmlPath, cssPath := writeSources(t)

	out, err := runCmd(t, nil, "dump", "--html", htmlPath, "--css", cssPath, "--width", "200")
	require.NoError(t, err)

	var root schemas.BoxSnapshot
	require.NoError(t, json.Unmarshal([]byte(out), &root))
	assert.Equal(t, "block", root.BoxType)
	assert.Equal(t, "html", root.TagName)
	assert.Equal(t, 200.0, root.Content.Width)

	require.Len(t, root.Children, 1)
	body := root.Children[0]
	assert.Equal(t, "body", body.TagName)
	assert.Equal(t, schemas.BoxEdges{Top: 8, Right: 8, Bottom: 8, Left: 8}, body.Margin)
	require.Len(t, body.Children, 1, "the hidden paragraph generates no box")

	main := body.Children[0]
	assert.Equal(t, "div", main.TagName)
	assert.Equal(t, schemas.BoxRect{X: 10, Y: 10, Width: 180, Height: 40}, main.Content)
	require.Len(t, main.Children, 1)
	assert.Equal(t, "anonymous", main.Children[0].BoxType)
	require.Len(t, main.Children[0].Children, 1)
	assert.Equal(t, "hello", main.Children[0].Children[0].Text)
}
