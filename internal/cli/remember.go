package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/pimemory/internal/memory"
)

type rememberOptions struct {
	scope    string
	category string
	date     string
	json     bool
}

// rememberResult mirrors what the tool-call layer reports back to the assistant.
type rememberResult struct {
	Scope    string `json:"scope"`
	Category string `json:"category"`
	Entry    string `json:"entry"`
	Entries  int    `json:"entries,omitempty"` // entries now under the category
	File     string `json:"file,omitempty"`
	Error    string `json:"error,omitempty"`
}

func newRememberCmd(root *rootOptions) *cobra.Command {
	opts := &rememberOptions{}

	cmd := &cobra.Command{
		Use:   "remember [entry]",
		Short: "Save a fact to memory",
		Long: `Save a fact or learning to memory under a category.

Scope:
  global   facts about the user's machine and preferences (~/.pi/memory.md)
  project  facts about this codebase (.pi/memory.md)

This is for facts, not behaviors.`,
		Example: `  pimemory remember --scope global --category Tools uses ripgrep
  pimemory remember -s project -c Gotchas "tests require network"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemember(cmd, root, opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&opts.scope, "scope", "s", "", "Where to save: global or project")
	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "Category like Environment, Tools, Preferences, Gotchas, Project")
	cmd.Flags().StringVar(&opts.date, "date", "", "Entry date as YYYY-MM-DD (default: today, UTC)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the result as JSON")
	cmd.MarkFlagRequired("scope")
	cmd.MarkFlagRequired("category")
	return cmd
}

func runRemember(cmd *cobra.Command, root *rootOptions, opts *rememberOptions, entry string) error {
	scope, err := memory.ParseScope(opts.scope)
	if err != nil {
		return err
	}

	date := time.Now().UTC()
	if opts.date != "" {
		date, err = time.Parse(memory.DateLayout, opts.date)
		if err != nil {
			return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", opts.date)
		}
	}

	store, err := root.openStore()
	if err != nil {
		return err
	}

	category := strings.TrimSpace(opts.category)
	result := rememberResult{Scope: string(scope), Category: category, Entry: memory.NormalizeEntry(entry)}
	saveErr := store.RememberAt(scope, category, entry, date)
	if saveErr == nil {
		result.File = store.Path(scope)
		doc := memory.Parse(store.Cached().Get(scope).Content)
		if sec, ok := doc.Section(category); ok {
			result.Entries = len(sec.Entries())
		}
	} else {
		result.Error = saveErr.Error()
	}

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else if saveErr == nil {
		fmt.Fprintf(out, "✓ Remembered in %s memory under %q:\n%s\n", scope, result.Category, result.Entry)
	}

	if saveErr != nil {
		return fmt.Errorf("failed to save memory: %w", saveErr)
	}
	return nil
}
