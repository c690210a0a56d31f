package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamcharls/netpbm-wic/pkg/netpbmwic"
)

const goModule = "github.com/teamcharls/netpbm-wic"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the netpbmwic version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "netpbmwic v%s\nmodule: %s\n", netpbmwic.Version, goModule)
			return nil
		},
	}
}
