package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wellnest/wellness-api/internal/core/domain"
)

func newRolesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "roles",
		Short: "List the role catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := domain.RoleCatalog()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), catalog)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ROLE\tCATEGORY\tTITLE\tFEATURES")
			for _, e := range catalog {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Role, e.Role.Category(), e.Config.Title, strings.Join(e.Config.Features, ", "))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
