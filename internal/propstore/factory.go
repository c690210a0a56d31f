package propstore

import (
	"log/slog"

	"github.com/teamcharls/netpbm-wic/internal/com"
	"github.com/teamcharls/netpbm-wic/pkg/types"
)

var _ types.ClassFactory = (*Factory)(nil)

// Factory builds Provider instances. The factory itself is not counted as
// an outstanding instance; the providers it creates are.
type Factory struct {
	com.RefCount
	module *com.Module
	opts   []Option
	log    *slog.Logger
}

// NewFactory returns a factory whose providers are counted in module.
// opts are applied to every provider it creates.
func NewFactory(module *com.Module, opts ...Option) *Factory {
	if module == nil {
		module = com.NewModule()
	}
	o := buildOptions(opts)
	f := &Factory{
		module: module,
		opts:   opts,
		log:    o.logger,
	}
	f.Init(nil)
	return f
}

// QueryInterface supports IUnknown and IClassFactory.
func (f *Factory) QueryInterface(iid types.GUID) (types.Unknown, error) {
	switch iid {
	case types.IIDUnknown, types.IIDClassFactory:
		f.AddRef()
		return f, nil
	default:
		return nil, types.ErrNoInterface
	}
}

// CreateInstance builds an unbound provider narrowed to iid. Aggregation
// is refused before anything is allocated. If the provider does not
// support iid it is destroyed and ErrNoInterface returned.
func (f *Factory) CreateInstance(outer types.Unknown, iid types.GUID) (types.Unknown, error) {
	f.log.Debug("property store factory CreateInstance", "iid", iid.String())
	if outer != nil {
		return nil, types.ErrNoAggregation
	}

	opts := append([]Option{WithModule(f.module), WithLogger(f.log)}, f.opts...)
	p := NewProvider(opts...)
	defer p.Release()

	return p.QueryInterface(iid)
}

// LockServer adjusts the module lock count.
func (f *Factory) LockServer(lock bool) error {
	f.log.Debug("property store factory LockServer", "lock", lock)
	return f.module.Lock(lock)
}
