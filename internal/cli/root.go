// Package cli implements wellnessctl, a small operator tool for inspecting the
// role catalog and previewing stat cards without running the API.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the wellnessctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wellnessctl",
		Short: "wellnessctl: inspect roles and preview stat cards",
		Long: `wellnessctl works offline against the built-in role catalog and the
stat card renderer.

Examples:
  wellnessctl roles                         List every role and its features
  wellnessctl roles --json                  Same, as JSON
  wellnessctl card --title Steps --value 8500 --number --trend 12`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRolesCmd(), newCardCmd())
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
