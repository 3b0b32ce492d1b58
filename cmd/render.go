// File: cmd/render.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/boxflow/internal/config"
	"github.com/xkilldash9x/boxflow/internal/engine"
	"github.com/xkilldash9x/boxflow/internal/observability"
	"github.com/xkilldash9x/boxflow/internal/paint"
)

// sourceFlags are the document and stylesheet paths shared by most commands.
type sourceFlags struct {
	html string
	css  string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.html, "html", "", "Path to the HTML document")
	cmd.Flags().StringVar(&s.css, "css", "", "Path to the stylesheet")
	_ = cmd.MarkFlagRequired("html")
}

// load expands both paths and reads the files.
func (s *sourceFlags) load(ctx context.Context) (engine.Input, error) {
	htmlPath, err := homedir.Expand(s.html)
	if err != nil {
		return engine.Input{}, fmt.Errorf("invalid --html path: %w", err)
	}
	cssPath, err := homedir.Expand(s.css)
	if err != nil {
		return engine.Input{}, fmt.Errorf("invalid --css path: %w", err)
	}
	return engine.LoadFiles(ctx, htmlPath, cssPath)
}

func newRenderCmd(a *app) *cobra.Command {
	var src sourceFlags
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render a document and stylesheet to a PNG or SVG image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyRenderFlagOverrides(cmd, a.cfg); err != nil {
				return err
			}
			in, err := src.load(cmd.Context())
			if err != nil {
				return err
			}
			result, err := a.renderer().Render(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("render failed: %w", err)
			}

			rc := a.cfg.Render()
			output, err := homedir.Expand(rc.Output)
			if err != nil {
				return fmt.Errorf("invalid output path: %w", err)
			}
			if err := writeImage(result, rc.Format, output); err != nil {
				return err
			}
			observability.Component("render").Info("Image written",
				zap.String("run_id", result.ID),
				zap.String("output", output),
				zap.String("format", rc.Format))
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	src.register(renderCmd)
	registerRenderFlags(renderCmd)
	renderCmd.Flags().StringP("output", "o", "", "Output image path (overrides config)")
	return renderCmd
}

// registerRenderFlags adds the format and viewport overrides.
func registerRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Output format: png or svg (overrides config)")
	cmd.Flags().Int("width", 0, "Viewport width in pixels (overrides config)")
	cmd.Flags().Int("height", 0, "Viewport height in pixels (overrides config)")
}

// applyRenderFlagOverrides copies explicitly set flags into the configuration
// and validates the result. When only --output is given, its extension picks
// the format.
func applyRenderFlagOverrides(cmd *cobra.Command, cfg config.Interface) error {
	flags := cmd.Flags()
	rc := cfg.Render()

	width, height := rc.ViewportWidth, rc.ViewportHeight
	if flags.Changed("width") {
		width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		height, _ = flags.GetInt("height")
	}
	cfg.SetViewport(width, height)

	if f := flags.Lookup("output"); f != nil && f.Changed {
		cfg.SetOutput(f.Value.String())
		if !flags.Changed("format") {
			if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(f.Value.String())), "."); ext == config.FormatPNG || ext == config.FormatSVG {
				cfg.SetFormat(ext)
			}
		}
	}
	if flags.Changed("format") {
		format, _ := flags.GetString("format")
		cfg.SetFormat(format)
	}
	if f := flags.Lookup("concurrency"); f != nil && f.Changed {
		n, _ := flags.GetInt("concurrency")
		cfg.SetConcurrency(n)
	}

	rc = cfg.Render()
	if err := rc.Validate(); err != nil {
		return fmt.Errorf("invalid render options: %w", err)
	}
	return nil
}

// writeImage paints result in the given format to path.
func writeImage(result *engine.Result, format, path string) error {
	bounds := result.Bounds()
	switch format {
	case config.FormatSVG:
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := paint.WriteSVG(f, result.DisplayList, int(bounds.Width), int(bounds.Height)); err != nil {
			f.Close()
			return fmt.Errorf("failed to write SVG: %w", err)
		}
		return f.Close()
	case config.FormatPNG:
		canvas, err := paint.NewCanvas(int(bounds.Width), int(bounds.Height))
		if err != nil {
			return err
		}
		canvas.Paint(result.DisplayList)
		if err := canvas.SavePNG(path); err != nil {
			return fmt.Errorf("failed to write PNG: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported output format %q", format)
}
