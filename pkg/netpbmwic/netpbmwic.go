// Package netpbmwic is the public entry point of the Netpbm component
// server: create a Server, obtain class objects from it, and poll
// CanUnloadNow before releasing the module.
//
// Example:
//
//	srv := netpbmwic.NewServer()
//	obj, err := srv.CreateInstance(types.PropertyStoreClassID, types.IIDInitializeWithStream)
//	if err != nil {
//	    return err
//	}
//	iws := obj.(types.InitializeWithStream)
//	defer iws.Release()
//	if err := iws.Initialize(f, types.ModeRead); err != nil {
//	    return err
//	}
//	store, err := types.Query[types.PropertyStore](iws, types.IIDPropertyStore)
package netpbmwic

import (
	"github.com/teamcharls/netpbm-wic/internal/decoder"
	"github.com/teamcharls/netpbm-wic/internal/server"
)

// Version is the module version.
const Version = decoder.Version

// Server is the class-object dispatcher.
type Server = server.Server

// Option configures a Server.
type Option = server.Option

// Server options.
var (
	WithLogger         = server.WithLogger
	WithModulePath     = server.WithModulePath
	WithChangeNotifier = server.WithChangeNotifier
)

// NewServer returns a Server serving the decoder and property store
// classes.
func NewServer(opts ...Option) *Server {
	return server.New(opts...)
}
