package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose      bool
	debugServer  bool
	watch        bool
	workspaceDir string
	configPath   string

	logger *zap.Logger
)

// rootCmd runs the interactive client.
var rootCmd = &cobra.Command{
	Use:   "evalclient",
	Short: "Terminal client for passphrase-gated coding exercises",
	Long: `evalclient fetches the exercise for your passphrase from the evaluation
service, shows its instructions and runs its tests against the solution file
in your workspace. Edit the solution, reload, and watch the tests go green.

Run without arguments to start the interactive client.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		// The interactive screen owns the terminal.
		if cmd == cmd.Root() {
			config.OutputPaths = []string{"stderr"}
			if !verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
			}
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInteractive,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the exercise tests once and print the results",
	Long: `Restores the persisted session, fetches the test suite, runs it against the
solution file and prints the results. Exits non-zero when a test fails or no
session is stored.`,
	RunE: runCheck,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the stored passphrase",
	RunE:  runReset,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the workspace, server and session in use",
	RunE:  runStatus,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&debugServer, "debug", false, "Use the local development server")
	rootCmd.PersistentFlags().StringVarP(&workspaceDir, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/.evalclient/config.yaml)")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "Reload whenever the solution file changes")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
