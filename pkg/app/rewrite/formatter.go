package rewrite

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// FormatOutput writes rewrite results to w in the given format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		encoder.SetIndent(2)
		return encoder.Encode(response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func formatTable(w io.Writer, response *Response) error {
	switch response.Mode {
	case ModeRoundTrip:
		fmt.Fprintf(w, "%s: %d blocks, %d bytes in, %d bytes out\n",
			response.InputPath, response.BlocksBefore, response.BytesIn, response.BytesOut)
		if response.Identical {
			fmt.Fprintf(w, "Round trip is byte-identical\n")
		} else {
			fmt.Fprintf(w, "Round trip differs from offset %d\n", response.FirstDiff)
		}
	case ModePrune:
		fmt.Fprintf(w, "%s: deleted %d of %d blocks\n", response.InputPath, response.Deleted(), response.BlocksBefore)
		fmt.Fprintf(w, "Wrote %s (%d bytes)\n", response.OutputPath, response.BytesOut)
	case ModeCreate:
		fmt.Fprintf(w, "Created %s, version %s (%d bytes)\n", response.OutputPath, response.Version, response.BytesOut)
	}
	if response.Mode == ModeRoundTrip && response.OutputPath != "" {
		fmt.Fprintf(w, "Wrote %s\n", response.OutputPath)
	}
	return nil
}
