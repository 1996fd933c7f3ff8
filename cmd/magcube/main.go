package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/lukaszgryglicki/magcube/internal/magcube"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "magcube",
	Short:         "Evaluate a trained magnetic field model over cubes, shells and spherical regions",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		magcube.Debug = magcube.Debug || verbose || os.Getenv("DEBUG") != ""
		config := zap.NewProductionConfig()
		if magcube.Debug {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		magcube.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run [config.yaml]",
	Short: "Evaluate the domain described by a run config",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := "configs/config.yaml"
		if len(args) > 0 {
			cfg = args[0]
		}
		return magcube.Run(cfg)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info [state.yaml]",
	Short: "Print the scale context and domain defaults of a state file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return magcube.Info(args[0])
	},
}

func main() {
	magcube.Progress = os.Getenv("PROGRESS") != ""
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging and per-chunk stats")
	rootCmd.AddCommand(runCmd, infoCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("Error: %v\n", err)
		// deferred profile stop would be skipped by os.Exit
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}
