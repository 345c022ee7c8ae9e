package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries state shared by every subcommand
type app struct {
	verbose    bool
	configPath string
	logFile    string

	logger *zap.Logger
	config fileConfig
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop(), config: defaultFileConfig()}

	root := &cobra.Command{
		Use:   "zeminka",
		Short: "Box collisions and spatial sound playground",
		Long: `zeminka bundles the engine pieces behind small commands:

  play       decode and play a sound file at a 3D position
  solve      run the collision momentum exchange on two bodies
  intersect  test two axis-aligned boxes for overlap
  sandbox    terminal playground with colliding boxes
  config     print the effective configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := a.buildLogger()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger

			cfg, err := loadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.config = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (.toml, .yaml or .yml)")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "stderr", "Log destination path, stderr or stdout")

	root.AddCommand(
		newPlayCmd(a),
		newSolveCmd(a),
		newIntersectCmd(a),
		newSandboxCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) buildLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if a.verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.OutputPaths = []string{a.logFile}
	config.ErrorOutputPaths = []string{a.logFile}
	return config.Build()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
