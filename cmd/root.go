package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-nif/internal/config"
	"github.com/deploymenttheory/go-nif/pkg/app"
	"github.com/deploymenttheory/go-nif/pkg/nif"
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	outputFormat string
	configFile   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "nifkit",
	Short: "Inspect and rewrite NetImmerse and Gamebryo NIF files",
	Long: `nifkit reads and writes NIF scene graph files as used by Gamebryo
engine games, from Oblivion through Fallout 76.

Commands:
  info        Show version, block counts and root of a file
  blocks      List the blocks of a file
  strings     List the header string table
  roundtrip   Load and save a file and compare the bytes
  prune       Delete blocks nothing references
  create      Write a new file holding only a root node`,
	Version:           "0.1.0-dev",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// An interrupt cancels the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: nifkit-config.yaml in the search path)")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// setup loads the config, lets explicit flags override it and routes
// library diagnostics to stderr.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("output") {
		outputFormat = cfg.OutputFormat
	}
	if err := app.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	nif.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// newContext builds the application context from the global flags.
func newContext(cmd *cobra.Command) *app.Context {
	ctx := app.NewContext()
	ctx.Context = cmd.Context()
	ctx.OutputFormat = GetOutputFormat()
	ctx.Verbose = GetVerbose()
	ctx.Quiet = GetQuiet()
	ctx.Out = cmd.OutOrStdout()
	ctx.Err = cmd.ErrOrStderr()
	return ctx
}

// sortBlocks resolves the --no-sort flag of cmd against the config.
func sortBlocks(cmd *cobra.Command) bool {
	if noSort, err := cmd.Flags().GetBool("no-sort"); err == nil && noSort {
		return false
	}
	return cfg.SortBlocks
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}

// GetQuiet returns the quiet flag value
func GetQuiet() bool {
	return quiet
}

// GetOutputFormat returns the output format
func GetOutputFormat() string {
	return outputFormat
}
