package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-nif/pkg/app"
	"github.com/deploymenttheory/go-nif/pkg/app/rewrite"
)

var (
	// Output selection (roundtrip, prune)
	writePath string
	inPlace   bool

	// Version selection (create only)
	createGame string
)

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip [file]",
	Short: "Load and save a NIF file and compare the bytes",
	Long: `Load a file, save it again and report whether the saved bytes match
the input. Exits non-zero when they differ.

Examples:
  nifkit roundtrip body.nif
  nifkit roundtrip body.nif --no-sort -w body.resaved.nif`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		response, err := runRewrite(cmd, &rewrite.Request{
			Mode:       rewrite.ModeRoundTrip,
			InputPath:  args[0],
			OutputPath: writePath,
			SortBlocks: sortBlocks(cmd),
		})
		if err != nil {
			return err
		}
		if !response.Identical {
			return app.NewError(app.ErrCodeMismatch, "saved file differs from input", nil)
		}
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune [file]",
	Short: "Delete blocks nothing references",
	Long: `Delete every block that is neither the root nor referenced by another
block, then save the result.

Examples:
  nifkit prune body.nif -w body.pruned.nif
  nifkit prune body.nif --in-place`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := writePath
		if inPlace {
			out = args[0]
		}
		_, err := runRewrite(cmd, &rewrite.Request{
			Mode:       rewrite.ModePrune,
			InputPath:  args[0],
			OutputPath: out,
			SortBlocks: sortBlocks(cmd),
		})
		return err
	},
}

var createCmd = &cobra.Command{
	Use:   "create [file]",
	Short: "Write a new NIF file holding only a root node",
	Long: `Write a new file for a game holding a single "Scene Root" node.

Examples:
  nifkit create empty.nif --game fo4`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		game := createGame
		if game == "" {
			game = cfg.DefaultGame
		}
		_, err := runRewrite(cmd, &rewrite.Request{
			Mode:       rewrite.ModeCreate,
			OutputPath: args[0],
			Game:       game,
			SortBlocks: true,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(roundtripCmd, pruneCmd, createCmd)

	for _, c := range []*cobra.Command{roundtripCmd, pruneCmd} {
		c.Flags().StringVarP(&writePath, "write", "w", "", "write the saved file to this path")
		c.Flags().Bool("no-sort", false, "keep the block order instead of sorting depth first")
	}
	pruneCmd.Flags().BoolVar(&inPlace, "in-place", false, "overwrite the input file")
	pruneCmd.MarkFlagsMutuallyExclusive("write", "in-place")
	pruneCmd.MarkFlagsOneRequired("write", "in-place")

	createCmd.Flags().StringVarP(&createGame, "game", "g", "", "game to create the file for (oblivion, fo3, skyrim, sse, fo4, fo76)")
}

func runRewrite(cmd *cobra.Command, request *rewrite.Request) (*rewrite.Response, error) {
	ctx, cancel := newContext(cmd).WithCancel()
	defer cancel()

	response, err := rewrite.Handle(ctx, request)
	if err != nil {
		return nil, err
	}
	if ctx.Quiet {
		return response, nil
	}
	return response, rewrite.FormatOutput(ctx.Out, response, ctx.OutputFormat)
}
