package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-nif/pkg/app/inspect"
)

var (
	// Block listing (blocks command only)
	blocksType string
	blocksName string
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Show version, block counts and root of a NIF file",
	Long: `Show a summary of a NIF file: version tuple, game, block and string
counts, the root block and how many blocks of each type it holds.

Examples:
  nifkit info meshes/actors/character/body.nif
  nifkit info body.nif -o json`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, &inspect.Request{Path: args[0]})
	},
}

var blocksCmd = &cobra.Command{
	Use:   "blocks [file]",
	Short: "List the blocks of a NIF file",
	Long: `List every block with its index, type, name, size and children.

Examples:
  # All blocks
  nifkit blocks body.nif

  # Only shapes whose name starts with "Body"
  nifkit blocks body.nif --type BSTriShape --name "Body*"`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, &inspect.Request{
			Path:        args[0],
			ShowBlocks:  true,
			TypeFilter:  blocksType,
			NamePattern: blocksName,
		})
	},
}

var stringsCmd = &cobra.Command{
	Use:   "strings [file]",
	Short: "List the header string table of a NIF file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, &inspect.Request{Path: args[0], ShowStrings: true})
	},
}

func init() {
	rootCmd.AddCommand(infoCmd, blocksCmd, stringsCmd)

	blocksCmd.Flags().StringVarP(&blocksType, "type", "t", "", "only list blocks of this type")
	blocksCmd.Flags().StringVarP(&blocksName, "name", "n", "", "only list blocks whose name matches (wildcards: *, ?)")
}

func runInspect(cmd *cobra.Command, request *inspect.Request) error {
	ctx, cancel := newContext(cmd).WithCancel()
	defer cancel()

	response, err := inspect.Handle(ctx, request)
	if err != nil {
		return err
	}
	return inspect.FormatOutput(ctx.Out, response, ctx.OutputFormat)
}
