package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamcharls/netpbm-wic/internal/server"
	"github.com/teamcharls/netpbm-wic/internal/sqlite"
	"github.com/teamcharls/netpbm-wic/pkg/types"
)

func newRegisterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Write the decoder and property store registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(srv *server.Server, store *sqlite.Store) error {
				if err := srv.Register(store); err != nil {
					return systemError("register: %w (%s)", err, types.ResultOf(err))
				}
				for _, clsid := range types.ServedClassIDs {
					fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", clsid)
				}
				return nil
			})
		},
	}
}

func newUnregisterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unregister",
		Short: "Remove the decoder and property store registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(srv *server.Server, store *sqlite.Store) error {
				if err := srv.Unregister(store); err != nil {
					return systemError("unregister: %w (%s)", err, types.ResultOf(err))
				}
				for _, clsid := range types.ServedClassIDs {
					fmt.Fprintf(cmd.OutOrStdout(), "unregistered %s\n", clsid)
				}
				return nil
			})
		},
	}
}

// newServer builds a server wired to the loaded config.
func (a *app) newServer() *server.Server {
	return server.New(
		server.WithLogger(a.log),
		server.WithModulePath(a.cfg.ModulePath),
		server.WithChangeNotifier(func() {
			a.log.Info("file associations changed")
		}),
	)
}

// withStore attaches the registry hive for the duration of fn.
func (a *app) withStore(fn func(*server.Server, *sqlite.Store) error) error {
	store := sqlite.NewStore()
	if err := store.Attach(a.cfg); err != nil {
		return systemError("attach registry hive: %w", err)
	}
	defer store.Detach()

	return fn(a.newServer(), store)
}
