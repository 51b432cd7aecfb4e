package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lazypower/pimemory/internal/config"
	"github.com/lazypower/pimemory/internal/logging"
	"github.com/lazypower/pimemory/internal/memory"
)

// rootOptions carries persistent flags and the state built from them
// before any subcommand runs.
type rootOptions struct {
	configPath string
	cwd        string
	logLevel   string

	cfg config.Config
	log *zap.Logger
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "pimemory",
		Short:        "Persistent memory for AI coding agents",
		Long:         "pimemory keeps short facts an assistant learned in Markdown files: one global, one per project.",
		Version:      VersionString(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.pi/pimemory.yaml)")
	root.PersistentFlags().StringVar(&opts.cwd, "cwd", "", "Project directory (default: working directory)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newRememberCmd(opts))
	root.AddCommand(newViewCmd(opts))
	root.AddCommand(newInitCmd(opts))
	root.AddCommand(newHookCmd(opts))
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads configuration and builds the logger.
func (o *rootOptions) setup() error {
	cfg, err := config.Load(o.configPath)
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	o.cfg = cfg
	o.log = logging.New(cfg.Log)
	return err
}

// openStore is a helper that builds the session store for CLI commands.
func (o *rootOptions) openStore() (*memory.Store, error) {
	return memory.Open(o.cfg, o.cwd, o.log)
}
