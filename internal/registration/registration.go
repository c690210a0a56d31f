// Package registration writes and removes the registry entries a host
// needs to discover the decoder and property store classes: class keys
// with codec metadata, the in-process server path, the decoder category
// instance and the per-extension property handler keys.
package registration

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/teamcharls/netpbm-wic/pkg/types"
)

// Registry paths, relative to the machine hive.
const (
	clsidRoot            = `SOFTWARE\Classes\CLSID\`
	propertyHandlersRoot = `SOFTWARE\Microsoft\Windows\CurrentVersion\PropertySystem\PropertyHandlers\`
	inprocServer         = `InprocServer32`
	threadingModel       = "Both"
)

// Store is a hierarchical key/value hive. Set operations create missing
// keys. DeleteTree returns an error wrapping types.ErrKeyNotFound when
// the key does not exist.
type Store interface {
	SetString(path, name, value string) error
	SetUint32(path, name string, value uint32) error
	DeleteTree(path string) error
}

// Registrar registers and unregisters the server classes in a Store.
type Registrar struct {
	store      Store
	modulePath string
	notify     func()
	log        *slog.Logger
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithModulePath sets the in-process server path written under each
// class key. Without it no InprocServer32 key is written.
func WithModulePath(path string) Option {
	return func(r *Registrar) { r.modulePath = path }
}

// WithChangeNotifier sets a hook called after a successful Register so
// the host can refresh its file association cache.
func WithChangeNotifier(fn func()) Option {
	return func(r *Registrar) { r.notify = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registrar) { r.log = l }
}

// New returns a Registrar writing to store.
func New(store Store, opts ...Option) *Registrar {
	r := &Registrar{store: store}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	return r
}

// ClassKey returns the registry path of a class id.
func ClassKey(clsid types.GUID) string {
	return clsidRoot + clsid.String()
}

// CategoryInstanceKey returns the path listing clsid under category.
func CategoryInstanceKey(category, clsid types.GUID) string {
	return clsidRoot + category.String() + `\Instance\` + clsid.String()
}

// PropertyHandlerKey returns the property handler path for a file
// extension such as ".pgm".
func PropertyHandlerKey(ext string) string {
	return propertyHandlersRoot + ext
}

// Register writes the decoder and property store registrations for the
// codec described by info. The first failed write stops registration and
// is returned as a *types.RegistrationError.
func (r *Registrar) Register(info types.DecoderInfo) error {
	r.log.Debug("register server", "decoder", info.ClassID.String())

	if err := r.registerDecoder(info); err != nil {
		return err
	}
	if err := r.registerPropertyStore(info); err != nil {
		return err
	}

	if r.notify != nil {
		r.notify()
	}
	return nil
}

func (r *Registrar) registerDecoder(info types.DecoderInfo) error {
	key := r.key(ClassKey(info.ClassID))
	key.setUint32("ArbitrationPriority", info.ArbitrationPriority)
	key.setString("Author", info.Author)
	key.setString("ColorManagementVersion", info.ColorManagementVersion)
	key.setString("ContainerFormat", info.ContainerFormat.String())
	key.setString("Description", info.Description)
	key.setString("FileExtensions", strings.Join(info.FileExtensions, ","))
	key.setString("FriendlyName", info.FriendlyName)
	key.setString("MimeTypes", strings.Join(info.MIMETypes, ","))
	key.setString("SpecVersion", info.SpecVersion)
	key.setUint32("SupportAnimation", boolDWORD(info.SupportsAnimation))
	key.setUint32("SupportChromaKey", boolDWORD(info.SupportsChromaKey))
	key.setUint32("SupportLossless", boolDWORD(info.SupportsLossless))
	key.setUint32("SupportMultiframe", boolDWORD(info.SupportsMultiframe))
	key.setString("Vendor", info.Vendor.String())
	key.setString("Version", info.Version)
	if key.err != nil {
		return key.err
	}

	if err := r.registerInprocServer(info.ClassID); err != nil {
		return err
	}

	category := r.key(CategoryInstanceKey(types.CategoryBitmapDecoders, info.ClassID))
	category.setString("FriendlyName", info.FriendlyName)
	category.setString("CLSID", info.ClassID.String())
	return category.err
}

func (r *Registrar) registerPropertyStore(info types.DecoderInfo) error {
	key := r.key(ClassKey(types.PropertyStoreClassID))
	key.setString("", "Netpbm Property Store")
	if key.err != nil {
		return key.err
	}

	if err := r.registerInprocServer(types.PropertyStoreClassID); err != nil {
		return err
	}

	for _, ext := range info.FileExtensions {
		handler := r.key(PropertyHandlerKey(ext))
		handler.setString("", types.PropertyStoreClassID.String())
		if handler.err != nil {
			return handler.err
		}
	}
	return nil
}

func (r *Registrar) registerInprocServer(clsid types.GUID) error {
	if r.modulePath == "" {
		return nil
	}
	key := r.key(ClassKey(clsid) + `\` + inprocServer)
	key.setString("", r.modulePath)
	key.setString("ThreadingModel", threadingModel)
	return key.err
}

// Unregister removes every tree Register wrote for info. Missing keys
// are skipped, so Unregister may run on a partial or absent
// registration. File extension associations are left intact. Every tree
// is attempted; the first failure is returned.
func (r *Registrar) Unregister(info types.DecoderInfo) error {
	r.log.Debug("unregister server", "decoder", info.ClassID.String())

	paths := []string{
		ClassKey(info.ClassID),
		CategoryInstanceKey(types.CategoryBitmapDecoders, info.ClassID),
		ClassKey(types.PropertyStoreClassID),
	}
	for _, ext := range info.FileExtensions {
		paths = append(paths, PropertyHandlerKey(ext))
	}

	var first error
	for _, path := range paths {
		err := r.store.DeleteTree(path)
		if err == nil || errors.Is(err, types.ErrKeyNotFound) {
			continue
		}
		r.log.Warn("unregister: delete failed", "path", path, "error", err)
		if first == nil {
			first = &types.RegistrationError{Op: "delete", Path: path, Err: err}
		}
	}
	return first
}

// keyWriter writes values under one path and keeps the first error.
type keyWriter struct {
	store Store
	path  string
	err   error
}

func (r *Registrar) key(path string) *keyWriter {
	return &keyWriter{store: r.store, path: path}
}

func (w *keyWriter) setString(name, value string) {
	if w.err != nil {
		return
	}
	if err := w.store.SetString(w.path, name, value); err != nil {
		w.err = &types.RegistrationError{Op: "set", Path: w.path + `\` + name, Err: err}
	}
}

func (w *keyWriter) setUint32(name string, value uint32) {
	if w.err != nil {
		return
	}
	if err := w.store.SetUint32(w.path, name, value); err != nil {
		w.err = &types.RegistrationError{Op: "set", Path: w.path + `\` + name, Err: err}
	}
}

func boolDWORD(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
