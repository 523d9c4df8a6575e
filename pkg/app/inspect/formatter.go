package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// FormatOutput writes inspection results to w in the given format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		return formatJSON(w, response)
	case "yaml":
		return formatYAML(w, response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatTable formats results as a table
func formatTable(w io.Writer, response *Response) error {
	info := response.File

	fmt.Fprintf(w, "File:     %s\n", info.Path)
	fmt.Fprintf(w, "Version:  %s (user %d, stream %d)\n", info.Version, info.User, info.Stream)
	if info.Game != "" {
		fmt.Fprintf(w, "Game:     %s\n", info.Game)
	}
	if info.Author != "" {
		fmt.Fprintf(w, "Author:   %s\n", info.Author)
	}
	fmt.Fprintf(w, "Blocks:   %d", info.NumBlocks)
	if info.UnknownBlocks > 0 {
		fmt.Fprintf(w, " (%d kept as raw data)", info.UnknownBlocks)
	}
	fmt.Fprintf(w, "\nStrings:  %d\n", info.NumStrings)
	if info.Root != nil {
		fmt.Fprintf(w, "Root:     %s\n", FormatBlockRef(*info.Root))
	}

	if len(response.Blocks) == 0 && len(response.Strings) == 0 {
		fmt.Fprintf(w, "\n")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "TYPE\tCOUNT\n")
		fmt.Fprintf(tw, "----\t-----\n")
		for _, tc := range info.TypeCounts {
			fmt.Fprintf(tw, "%s\t%d\n", tc.Type, tc.Count)
		}
		return tw.Flush()
	}

	if len(response.Blocks) > 0 {
		fmt.Fprintf(w, "\n")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "INDEX\tTYPE\tNAME\tSIZE\tCHILDREN\n")
		fmt.Fprintf(tw, "-----\t----\t----\t----\t--------\n")
		for _, b := range response.Blocks {
			typ := b.Type
			if b.Unknown {
				typ += " (raw)"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", b.Index, typ, b.Name, formatSize(b.Size), formatChildren(b.Children))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(response.Strings) > 0 {
		fmt.Fprintf(w, "\n")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "ID\tSTRING\n")
		fmt.Fprintf(tw, "--\t------\n")
		for i, s := range response.Strings {
			fmt.Fprintf(tw, "%d\t%q\n", i, s)
		}
		return tw.Flush()
	}
	return nil
}

// formatJSON formats results as JSON
func formatJSON(w io.Writer, response *Response) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// formatYAML formats results as YAML
func formatYAML(w io.Writer, response *Response) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(response)
}

// FormatBlockRef renders a block as "[index] Type 'name'".
func FormatBlockRef(ref BlockRef) string {
	if ref.Name == "" {
		return fmt.Sprintf("[%d] %s", ref.Index, ref.Type)
	}
	return fmt.Sprintf("[%d] %s '%s'", ref.Index, ref.Type, ref.Name)
}

func formatSize(size uint32) string {
	if size == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", size)
}

func formatChildren(children []uint32) string {
	if len(children) == 0 {
		return "-"
	}
	out := ""
	for i, c := range children {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%d", c)
	}
	return out
}
