package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newViewCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "view",
		Aliases: []string{"memory"},
		Short:   "View current memories (global and project)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := root.openStore()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.View())
			return nil
		},
	}
}
