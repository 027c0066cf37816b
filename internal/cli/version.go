package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabulate/pkg/tabulate"
)

const modulePath = "github.com/mesh-intelligence/tabulate"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tabulate version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tabulate v%s\nmodule: %s\n", tabulate.Version, modulePath)
			return nil
		},
	}
}
