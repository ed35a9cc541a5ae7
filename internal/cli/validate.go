// Package cli holds the viewer's offline subcommands.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gpu-raytracer/scene"
	"gpu-raytracer/uniforms"
)

func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scene-file>...",
		Short: "Parse scene files and report record counts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Validate(cmd.OutOrStdout(), args)
		},
	}
}

// Validate parses every path, printing one line per file and a warning for
// each kind that overflows the shader's arrays. It fails if any file does
// not parse.
func Validate(w io.Writer, paths []string) error {
	failed := 0
	for _, path := range paths {
		s, err := scene.Load(path)
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", path, err)
			failed++
			continue
		}

		counts := s.Counts()
		fmt.Fprintf(w, "%s: ok", path)
		for _, k := range scene.Kinds {
			fmt.Fprintf(w, " %s=%d", k, counts[k])
		}
		fmt.Fprintln(w)

		for _, k := range scene.Kinds {
			if limit := uniforms.MaxRecords(k); counts[k] > limit {
				fmt.Fprintf(w, "%s: warning: %d %s records, only the first %d are rendered\n",
					path, counts[k], k, limit)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scene files invalid", failed, len(paths))
	}
	return nil
}
