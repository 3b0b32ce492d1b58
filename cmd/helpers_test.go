// File: cmd/helpers_test.go
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xkilldash9x/boxflow/internal/config"
	"github.com/xkilldash9x/boxflow/internal/engine"
	"github.com/xkilldash9x/boxflow/internal/layout"
	"github.com/xkilldash9x/boxflow/internal/mocks"
	"github.com/xkilldash9x/boxflow/internal/paint"
	"github.com/xkilldash9x/boxflow/internal/parser"
)

const testHTML = `<html><body><div id="main">hello</div><p class="hidden">gone</p></body></html>`

const testCSS = `
html, body, div { display: block }
body { margin: 8px }
#main { height: 40px; padding: 2px; background: #00ff00 }
.hidden { display: none }
`

// writeSources writes the test document and stylesheet into a temp directory.
func writeSources(t *testing.T) (dir, htmlPath, cssPath string) {
	t.Helper()
	dir = t.TempDir()
	htmlPath = filepath.Join(dir, "page.html")
	cssPath = filepath.Join(dir, "page.css")
	require.NoError(t, os.WriteFile(htmlPath, []byte(testHTML), 0o644))
	require.NoError(t, os.WriteFile(cssPath, []byte(testCSS), 0o644))
	return dir, htmlPath, cssPath
}

// mockFactory returns a RendererFactory handing out r.
func mockFactory(r *mocks.MockRenderer) RendererFactory {
	return func(cfg config.Interface, logger *zap.Logger) Renderer { return r }
}

// runCmd executes the command tree with args and returns its stdout.
func runCmd(t *testing.T, factory RendererFactory, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BOXFLOW_LOG_LEVEL", "error")
	root := NewRootCmd(factory)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// redSquareResult is a 20x10 render with a 10x10 red square at the origin.
func redSquareResult() *engine.Result {
	return &engine.Result{
		ID:       "run-1",
		Viewport: layout.Dimensions{Content: layout.Rect{Width: 20, Height: 10}},
		DisplayList: paint.DisplayList{
			paint.SolidColor{Color: parser.Color{R: 255, A: 255}, Rect: layout.Rect{Width: 10, Height: 10}},
		},
	}
}
