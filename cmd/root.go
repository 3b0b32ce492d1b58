// -- cmd/root.go --
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/boxflow/internal/config"
	"github.com/xkilldash9x/boxflow/internal/engine"
	"github.com/xkilldash9x/boxflow/internal/observability"
)

// Renderer runs documents through the rendering pipeline.
type Renderer interface {
	Render(ctx context.Context, in engine.Input) (*engine.Result, error)
	RenderAll(ctx context.Context, inputs []engine.Input) []engine.Outcome
}

// RendererFactory builds a Renderer once configuration has been resolved.
type RendererFactory func(cfg config.Interface, logger *zap.Logger) Renderer

// NewPipelineRenderer is the production RendererFactory.
func NewPipelineRenderer(cfg config.Interface, logger *zap.Logger) Renderer {
	return engine.New(cfg, logger)
}

// app carries the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	factory RendererFactory
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd(factory RendererFactory) *cobra.Command {
	if factory == nil {
		factory = NewPipelineRenderer
	}
	a := &app{factory: factory}

	rootCmd := &cobra.Command{
		Use:           "boxflow",
		Short:         "Boxflow styles and lays out HTML documents and paints the result.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			config.SetDefaults(v)
			if err := initializeConfig(v, a.cfgFile); err != nil {
				return err
			}
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}
			a.cfg = cfg

			observability.InitializeLogger(cfg.Logger())
			observability.GetLogger().Debug("Starting boxflow", zap.String("version", Version))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s version %s\n" .Name .Version}}`)

	rootCmd.AddCommand(
		newRenderCmd(a),
		newBatchCmd(a),
		newGeometryCmd(a),
		newDumpCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := NewRootCmd(nil).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		observability.Sync()
		return 1
	}
	return 0
}

// initializeConfig reads in the config file and BOXFLOW_ environment variables.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("BOXFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; defaults and environment apply.
	}
	return nil
}

// renderer builds a Renderer from the resolved configuration.
func (a *app) renderer() Renderer {
	return a.factory(a.cfg, observability.GetLogger())
}
