// Package decoder provides the Netpbm decoder class: its static codec
// description and the object and factory the server dispatches to. The
// object carries identity only; it offers no decode operation.
package decoder

import (
	"log/slog"

	"github.com/teamcharls/netpbm-wic/internal/com"
	"github.com/teamcharls/netpbm-wic/pkg/types"
)

// Version is written to the registry as the codec version.
const Version = "0.1.0"

// Info returns the codec description registered for the decoder class.
func Info() types.DecoderInfo {
	return types.DecoderInfo{
		ClassID:                types.DecoderClassID,
		ContainerFormat:        types.ContainerFormatNetpbm,
		Vendor:                 types.VendorID,
		Author:                 "Team CharLS",
		Description:            "Netpbm Codec",
		FriendlyName:           "Netpbm Decoder (Go)",
		Version:                Version,
		SpecVersion:            "1.0.0.0",
		ColorManagementVersion: "1.0.0.0",
		FileExtensions:         []string{".pgm", ".ppm"},
		MIMETypes:              []string{"image/x-portable-graymap", "image/x-portable-pixmap"},
		ArbitrationPriority:    10,
		SupportsLossless:       true,
	}
}

var _ types.BitmapDecoder = (*Decoder)(nil)

// Decoder is the decoder class object.
type Decoder struct {
	com.RefCount
	info types.DecoderInfo
}

// New returns a decoder holding one reference, counted in module until
// its final Release. module may be nil.
func New(module *com.Module) *Decoder {
	d := &Decoder{info: Info()}
	d.Track(module)
	return d
}

// QueryInterface supports IUnknown and IWICBitmapDecoder.
func (d *Decoder) QueryInterface(iid types.GUID) (types.Unknown, error) {
	switch iid {
	case types.IIDUnknown, types.IIDBitmapDecoder:
		d.AddRef()
		return d, nil
	default:
		return nil, types.ErrNoInterface
	}
}

// ContainerFormat returns the Netpbm container format id.
func (d *Decoder) ContainerFormat() types.GUID {
	return d.info.ContainerFormat
}

// Info returns the codec description.
func (d *Decoder) Info() types.DecoderInfo {
	return d.info
}

var _ types.ClassFactory = (*Factory)(nil)

// Factory builds Decoder instances.
type Factory struct {
	com.RefCount
	module *com.Module
	log    *slog.Logger
}

// NewFactory returns a decoder factory counting its objects in module.
func NewFactory(module *com.Module, logger *slog.Logger) *Factory {
	if module == nil {
		module = com.NewModule()
	}
	if logger == nil {
		logger = slog.Default()
	}
	f := &Factory{module: module, log: logger}
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

// CreateInstance builds a decoder narrowed to iid.
func (f *Factory) CreateInstance(outer types.Unknown, iid types.GUID) (types.Unknown, error) {
	f.log.Debug("decoder factory CreateInstance", "iid", iid.String())
	if outer != nil {
		return nil, types.ErrNoAggregation
	}
	d := New(f.module)
	defer d.Release()
	return d.QueryInterface(iid)
}

// LockServer adjusts the module lock count.
func (f *Factory) LockServer(lock bool) error {
	return f.module.Lock(lock)
}
