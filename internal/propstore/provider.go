package propstore

import (
	"io"
	"log/slog"

	"github.com/teamcharls/netpbm-wic/internal/com"
	"github.com/teamcharls/netpbm-wic/pkg/types"
)

var (
	_ types.InitializeWithStream = (*Provider)(nil)
	_ types.PropertyStore        = (*Provider)(nil)
)

// Provider is the read-only property store object. It is created
// unbound; Initialize binds it to an image stream exactly once, after
// which the property set is frozen.
//
// Initialize must not race with itself: a second or concurrent call fails
// with ErrAlreadyInitialized and leaves the bound state alone. Reads are
// safe from any goroutine at any time.
type Provider struct {
	com.RefCount
	table *Table
	log   *slog.Logger
}

type options struct {
	module *com.Module
	source ValueSource
	logger *slog.Logger
}

// Option configures a Provider or Factory.
type Option func(*options)

// WithModule counts providers in m until their final Release.
func WithModule(m *com.Module) Option {
	return func(o *options) { o.module = m }
}

// WithValueSource sets where Initialize takes its values from.
func WithValueSource(s ValueSource) Option {
	return func(o *options) { o.source = s }
}

// WithLogger sets the logger for entry-point traces.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// NewProvider returns an unbound provider holding one reference.
func NewProvider(opts ...Option) *Provider {
	o := buildOptions(opts)
	p := &Provider{
		table: NewTable(o.source),
		log:   o.logger,
	}
	p.Track(o.module)
	return p
}

// QueryInterface supports IUnknown, IInitializeWithStream and
// IPropertyStore.
func (p *Provider) QueryInterface(iid types.GUID) (types.Unknown, error) {
	switch iid {
	case types.IIDUnknown, types.IIDInitializeWithStream, types.IIDPropertyStore:
		p.AddRef()
		return p, nil
	default:
		p.log.Debug("property store QueryInterface: unsupported", "iid", iid.String())
		return nil, types.ErrNoInterface
	}
}

// Initialize binds the provider to stream. The access mode is ignored:
// the provider never writes.
func (p *Provider) Initialize(stream io.Reader, mode types.AccessMode) error {
	p.log.Debug("property store Initialize", "mode", uint32(mode))
	if err := p.table.Bind(stream); err != nil {
		p.log.Debug("property store Initialize failed", "error", err)
		return err
	}
	return nil
}

// GetCount returns the number of properties.
func (p *Provider) GetCount() uint32 {
	n := p.table.Count()
	p.log.Debug("property store GetCount", "count", n)
	return n
}

// GetAt returns the key at index.
func (p *Provider) GetAt(index uint32) (types.PropertyKey, error) {
	p.log.Debug("property store GetAt", "index", index)
	return p.table.KeyAt(index)
}

// GetValue returns the value for key, empty on a miss.
func (p *Provider) GetValue(key types.PropertyKey) types.Value {
	p.log.Debug("property store GetValue", "key", types.KeyName(key))
	return p.table.Value(key)
}

// SetValue always fails with ErrAccessDenied.
func (p *Provider) SetValue(key types.PropertyKey, value types.Value) error {
	p.log.Debug("property store SetValue", "key", types.KeyName(key))
	return types.ErrAccessDenied
}

// Commit always fails with ErrAccessDenied.
func (p *Provider) Commit() error {
	p.log.Debug("property store Commit")
	return types.ErrAccessDenied
}

// Records returns the bound records in slot order, nil while unbound.
func (p *Provider) Records() []types.PropertyRecord {
	return p.table.Records()
}
