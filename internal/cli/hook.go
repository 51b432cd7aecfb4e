package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lazypower/pimemory/internal/hooks"
)

func newHookCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Handle host hook events",
		// A broken config file must not break the host: fall back to defaults.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := root.setup(); err != nil {
				root.log.Warn("load config, using defaults", zap.Error(err))
			}
		},
	}

	events := []struct {
		name  string
		short string
	}{
		{"start", "Handle SessionStart hook: inject memory as context"},
		{"end", "Handle SessionEnd hook"},
	}
	for _, ev := range events {
		event := ev.name
		cmd.AddCommand(&cobra.Command{
			Use:   event,
			Short: ev.short,
			Args:  cobra.NoArgs,
			// Hooks must never fail the host session.
			Run: func(cmd *cobra.Command, args []string) {
				h := &hooks.Handler{
					Config: root.cfg,
					Log:    root.log,
					Stdout: cmd.OutOrStdout(),
					Dir:    root.cwd,
				}
				h.Handle(event, cmd.InOrStdin())
			},
		})
	}
	return cmd
}
