// File: cmd/batch.go
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/boxflow/internal/engine"
	"github.com/xkilldash9x/boxflow/internal/observability"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		cssPath string
		outDir  string
	)
	batchCmd := &cobra.Command{
		Use:   "batch [documents...]",
		Short: "Render several documents with one stylesheet into a directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.Component("batch")

			if err := applyRenderFlagOverrides(cmd, a.cfg); err != nil {
				return err
			}

			css, err := homedir.Expand(cssPath)
			if err != nil {
				return fmt.Errorf("invalid --css path: %w", err)
			}
			dir, err := homedir.Expand(outDir)
			if err != nil {
				return fmt.Errorf("invalid --out-dir path: %w", err)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			inputs := make([]engine.Input, len(args))
			g, gctx := errgroup.WithContext(ctx)
			for i, arg := range args {
				i, arg := i, arg
				g.Go(func() error {
					path, err := homedir.Expand(arg)
					if err != nil {
						return fmt.Errorf("invalid document path %q: %w", arg, err)
					}
					in, err := engine.LoadFiles(gctx, path, css)
					if err != nil {
						return err
					}
					inputs[i] = in
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			format := a.cfg.Render().Format
			names := outputNames(inputs, format)
			var errs error
			written := 0
			for i, outcome := range a.renderer().RenderAll(ctx, inputs) {
				if outcome.Err != nil {
					errs = multierr.Append(errs, fmt.Errorf("%s: %w", outcome.Input.Name, outcome.Err))
					continue
				}
				output := filepath.Join(dir, names[i])
				if err := writeImage(outcome.Result, format, output); err != nil {
					errs = multierr.Append(errs, fmt.Errorf("%s: %w", outcome.Input.Name, err))
					continue
				}
				written++
				fmt.Fprintln(cmd.OutOrStdout(), output)
			}

			logger.Info("Batch render finished",
				zap.Int("documents", len(inputs)),
				zap.Int("written", written),
				zap.Int("failed", len(multierr.Errors(errs))))
			return errs
		},
	}
	batchCmd.Flags().StringVar(&cssPath, "css", "", "Path to the stylesheet applied to every document")
	batchCmd.Flags().StringVarP(&outDir, "out-dir", "d", ".", "Directory receiving the images")
	batchCmd.Flags().IntP("concurrency", "j", 0, "Number of documents rendered at once (overrides config)")
	registerRenderFlags(batchCmd)
	return batchCmd
}

// outputName replaces the extension of a document path with the image format.
func outputName(document, format string) string {
	base := filepath.Base(document)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + format
}

// outputNames assigns every input a distinct file name. Documents sharing a
// base name get a numeric suffix in input order (index.png, index-2.png).
// Names are compared case-insensitively.
func outputNames(inputs []engine.Input, format string) []string {
	names := make([]string, len(inputs))
	used := make(map[string]bool, len(inputs))
	for i, in := range inputs {
		name := outputName(in.Name, format)
		stem := strings.TrimSuffix(name, "."+format)
		for n := 2; used[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s-%d.%s", stem, n, format)
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}
