// Command netpbmwic registers the Netpbm decoder and property store
// classes in the registry hive and probes images through them.
package main

import (
	"os"

	"github.com/teamcharls/netpbm-wic/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
