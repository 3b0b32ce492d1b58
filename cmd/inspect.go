// File: cmd/inspect.go
package cmd

import (
	"fmt"
	"io"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/xkilldash9x/boxflow/internal/layout"
)

func newGeometryCmd(a *app) *cobra.Command {
	var (
		src   sourceFlags
		xpath string
	)
	geometryCmd := &cobra.Command{
		Use:   "geometry",
		Short: "Print the border box of the first element matching an XPath expression",
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
			geometry, err := result.Geometry(xpath)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), geometry)
		},
	}
	src.register(geometryCmd)
	registerRenderFlags(geometryCmd)
	geometryCmd.Flags().StringVar(&xpath, "xpath", "", "XPath expression selecting the element")
	_ = geometryCmd.MarkFlagRequired("xpath")
	return geometryCmd
}

func newDumpCmd(a *app) *cobra.Command {
	var src sourceFlags
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the laid out box tree as JSON",
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
			return writeJSON(cmd.OutOrStdout(), layout.Snapshot(result.LayoutRoot))
		},
	}
	src.register(dumpCmd)
	registerRenderFlags(dumpCmd)
	return dumpCmd
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
