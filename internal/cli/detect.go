package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabulate/internal/export"
)

func (a *app) newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <input.json>",
		Short: "Report the catalog format of a document without exporting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return sysError(fmt.Errorf("open input: %w", err))
			}
			defer f.Close()

			format, err := export.Sniff(f)
			if err != nil {
				return classify(err)
			}
			if a.jsonMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
					"input":  args[0],
					"format": string(format),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), format)
			return nil
		},
	}
}
