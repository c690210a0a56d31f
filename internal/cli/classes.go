package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamcharls/netpbm-wic/pkg/types"
)

type classRow struct {
	ClassID string `json:"class_id"`
	Name    string `json:"name"`
	Result  string `json:"result"`
}

var classNames = map[types.GUID]string{
	types.DecoderClassID:       "decoder",
	types.PropertyStoreClassID: "property store",
}

func newClassesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "Request the class object of every served class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := a.newServer()

			rows := make([]classRow, 0, len(types.ServedClassIDs))
			for _, clsid := range types.ServedClassIDs {
				obj, err := srv.GetClassObject(clsid, types.IIDClassFactory)
				if err == nil {
					obj.Release()
				}
				rows = append(rows, classRow{
					ClassID: clsid.String(),
					Name:    classNames[clsid],
					Result:  types.ResultOf(err).String(),
				})
			}

			out := cmd.OutOrStdout()
			if flags.jsonMode {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			for _, r := range rows {
				fmt.Fprintf(out, "%s  %-15s %s\n", r.ClassID, r.Name, r.Result)
			}
			return nil
		},
	}
}
