package cmd

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/districtlens-cli/internal/utils"
	"github.com/spf13/cobra"
)

const (
	formatMarkdown = "md"
	formatCSV      = "csv"
	formatJSON     = "json"
)

// renderer writes one output format of a result.
type renderer map[string]func(io.Writer) error

func jsonRenderer(v any) func(io.Writer) error {
	return func(w io.Writer) error {
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
}

func textRenderer(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

// emit writes the chosen format to outPath, or to stdout when outPath is empty.
func emit(cmd *cobra.Command, r renderer, format, outPath string) error {
	render, ok := r[format]
	if !ok {
		keys := make([]string, 0, len(r))
		for _, k := range []string{formatMarkdown, formatCSV, formatJSON} {
			if _, ok := r[k]; ok {
				keys = append(keys, k)
			}
		}
		return fmt.Errorf("unsupported --format: %s (use %v)", format, keys)
	}
	if outPath == "" {
		return render(cmd.OutOrStdout())
	}
	if err := utils.WriteRendered(outPath, render); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s to %s\n", format, outPath)
	return nil
}
