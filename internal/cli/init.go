package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lazypower/pimemory/internal/memory"
)

func newInitCmd(root *rootOptions) *cobra.Command {
	var scopeFlag string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create memory files from their default skeletons",
		Long:  "Create the memory file for a scope if it does not exist. Existing files are never modified.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scopes := memory.Scopes
			if !strings.EqualFold(scopeFlag, "all") {
				scope, err := memory.ParseScope(scopeFlag)
				if err != nil {
					return err
				}
				scopes = []memory.Scope{scope}
			}

			store, err := root.openStore()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, scope := range scopes {
				existed := store.Exists(scope)
				if err := store.EnsureInitialized(scope); err != nil {
					return err
				}
				if existed {
					fmt.Fprintf(out, "%s memory already exists: %s\n", scope.Title(), store.Path(scope))
				} else {
					fmt.Fprintf(out, "Created %s memory: %s\n", scope, store.Path(scope))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&scopeFlag, "scope", "s", "all", "Scope to initialize: global, project or all")
	return cmd
}
