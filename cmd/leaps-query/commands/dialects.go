package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biyonik/leaps-query/pkg/database"
	"github.com/biyonik/leaps-query/pkg/database/query"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List supported SQL dialects and drivers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Dialects:")
			for _, name := range query.Dialects() {
				fmt.Fprintf(out, "  %s\n", name)
			}

			fmt.Fprintln(out, "Drivers:")
			for _, name := range database.Drivers() {
				d, err := database.LookupDriver(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %-10s → %s\n", d.Name, d.Dialect)
			}
			return nil
		},
	}
}
