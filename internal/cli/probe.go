package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teamcharls/netpbm-wic/internal/server"
	"github.com/teamcharls/netpbm-wic/pkg/types"
)

type probeRow struct {
	Index int    `json:"index"`
	Key   string `json:"key"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type probeResult struct {
	File         string     `json:"file"`
	Count        uint32     `json:"count"`
	Properties   []probeRow `json:"properties"`
	CanUnloadNow bool       `json:"can_unload_now"`
}

func newProbeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>",
		Short: "Read an image's properties through the property store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.probe(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.jsonMode {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			fmt.Fprintf(out, "%s: %d properties\n", res.File, res.Count)
			for _, p := range res.Properties {
				fmt.Fprintf(out, "  [%d] %-34s %s\n", p.Index, p.Name, p.Value)
			}
			fmt.Fprintf(out, "can unload: %t\n", res.CanUnloadNow)
			return nil
		},
	}
}

// probe binds a fresh property store to file and reads every property.
// CanUnloadNow is polled after every handle has been released.
func (a *app) probe(file string) (*probeResult, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	srv := a.newServer()
	res, err := readProperties(srv, f)
	if err != nil {
		return nil, err
	}
	res.File = file
	res.CanUnloadNow = srv.CanUnloadNow()
	return res, nil
}

func readProperties(srv *server.Server, stream io.Reader) (*probeResult, error) {
	obj, err := srv.CreateInstance(types.PropertyStoreClassID, types.IIDInitializeWithStream)
	if err != nil {
		return nil, fmt.Errorf("create property store: %w", err)
	}
	iws, ok := obj.(types.InitializeWithStream)
	if !ok {
		obj.Release()
		return nil, types.ErrNoInterface
	}
	defer iws.Release()

	if err := iws.Initialize(stream, types.ModeRead); err != nil {
		return nil, fmt.Errorf("initialize: %w (%s)", err, types.ResultOf(err))
	}

	store, err := types.Query[types.PropertyStore](iws, types.IIDPropertyStore)
	if err != nil {
		return nil, fmt.Errorf("query property store: %w", err)
	}
	defer store.Release()

	res := &probeResult{Count: store.GetCount(), Properties: []probeRow{}}
	for i := uint32(0); i < res.Count; i++ {
		key, err := store.GetAt(i)
		if err != nil {
			return nil, fmt.Errorf("get property %d: %w", i, err)
		}
		v := store.GetValue(key)
		res.Properties = append(res.Properties, probeRow{
			Index: int(i),
			Key:   key.String(),
			Name:  types.KeyName(key),
			Kind:  v.Kind().String(),
			Value: v.String(),
		})
	}
	return res, nil
}
