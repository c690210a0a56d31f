// Package types defines the component interfaces, identifiers, property
// keys and values, and the standard error classifications shared by the
// netpbm-wic server, its factories and the property provider.
//
// The interfaces model the host's component object model: every object is
// reached through an Unknown handle and narrowed to a capability with
// QueryInterface (or the generic Query helper). Handles are reference
// counted; the last Release returns the object's slot in the module-wide
// outstanding-instance count that CanUnloadNow reports on.
package types
