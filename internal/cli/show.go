package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamcharls/netpbm-wic/internal/server"
	"github.com/teamcharls/netpbm-wic/internal/sqlite"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [path-prefix]",
		Short: "List registry values, optionally below a key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			return a.withStore(func(_ *server.Server, store *sqlite.Store) error {
				entries, err := store.Entries(prefix)
				if err != nil {
					return systemError("list registry: %w", err)
				}

				out := cmd.OutOrStdout()
				if flags.jsonMode {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(entries)
				}
				for _, e := range entries {
					name := e.Name
					if name == "" {
						name = "(default)"
					}
					fmt.Fprintf(out, "%s\\%s = %s:%s\n", e.Path, name, e.Kind, e.Value)
				}
				return nil
			})
		},
	}
}
