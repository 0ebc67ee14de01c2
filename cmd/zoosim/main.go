// Command zoosim replays zoo accommodation scenarios and narrates the outcome.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"zoocore/internal/config"
)

var exitFunc = os.Exit

type app struct {
	cfg     config.Config
	logger  *zap.Logger
	verbose bool
	locale  string
	stderr  io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}
	root := &cobra.Command{
		Use:           "zoosim",
		Short:         "Simulate animal accommodation in zoo enclosures",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("locale") {
				cfg.Locale = a.locale
			}
			if a.verbose {
				cfg.LogLevel = zapcore.DebugLevel
			}
			a.cfg = cfg
			a.logger = newLogger(cfg.LogLevel, a.stderr)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.locale, "locale", "", "Narration locale (en-US, ru-RU)")

	root.AddCommand(newRunCmd(a), newCheckCmd(a))
	return root
}

func newLogger(level zapcore.Level, w io.Writer) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	zc := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(zc)
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zoosim:", err)
		exitFunc(1)
	}
}
