// Package server is the module entry point a host loads: it maps class
// ids to class factories, answers the unload poll from the module-wide
// instance count, and performs (un)registration.
package server

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/teamcharls/netpbm-wic/internal/com"
	"github.com/teamcharls/netpbm-wic/internal/decoder"
	"github.com/teamcharls/netpbm-wic/internal/propstore"
	"github.com/teamcharls/netpbm-wic/internal/registration"
	"github.com/teamcharls/netpbm-wic/pkg/types"
)

// FactoryFunc builds the class factory for one class id.
type FactoryFunc func(module *com.Module, logger *slog.Logger) types.ClassFactory

// Server dispatches class requests for one loaded module. All methods are
// safe for concurrent use.
type Server struct {
	module     *com.Module
	log        *slog.Logger
	modulePath string
	notify     func()
	propOpts   []propstore.Option

	mu        sync.RWMutex
	factories map[types.GUID]FactoryFunc
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger passed to every factory and object.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithModulePath sets the server path written at registration.
func WithModulePath(path string) Option {
	return func(s *Server) { s.modulePath = path }
}

// WithChangeNotifier sets the hook run after a successful Register.
func WithChangeNotifier(fn func()) Option {
	return func(s *Server) { s.notify = fn }
}

// WithPropertyOptions adds options applied to every property provider.
func WithPropertyOptions(opts ...propstore.Option) Option {
	return func(s *Server) { s.propOpts = append(s.propOpts, opts...) }
}

// New returns a Server serving the decoder and property store classes.
func New(opts ...Option) *Server {
	s := &Server{
		module:    com.NewModule(),
		factories: make(map[types.GUID]FactoryFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}

	s.factories[types.DecoderClassID] = func(m *com.Module, l *slog.Logger) types.ClassFactory {
		return decoder.NewFactory(m, l)
	}
	s.factories[types.PropertyStoreClassID] = func(m *com.Module, l *slog.Logger) types.ClassFactory {
		opts := append([]propstore.Option{propstore.WithLogger(l)}, s.propOpts...)
		return propstore.NewFactory(m, opts...)
	}
	return s
}

// RegisterClass serves clsid with fn, replacing any previous factory.
func (s *Server) RegisterClass(clsid types.GUID, fn FactoryFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.factories[clsid] = fn
}

// Module returns the module whose counters CanUnloadNow reads.
func (s *Server) Module() *com.Module {
	return s.module
}

// GetClassObject returns the factory for clsid narrowed to iid.
// Returns ErrClassNotAvailable for an unknown clsid and ErrNoInterface if
// the factory does not support iid.
func (s *Server) GetClassObject(clsid, iid types.GUID) (types.Unknown, error) {
	s.log.Debug("GetClassObject", "clsid", clsid.String(), "iid", iid.String())

	s.mu.RLock()
	fn, ok := s.factories[clsid]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", clsid, types.ErrClassNotAvailable)
	}

	factory := fn(s.module, s.log)
	defer factory.Release()
	return factory.QueryInterface(iid)
}

// CreateInstance creates an object of class clsid narrowed to iid, the
// way a host creates objects without holding on to the factory.
func (s *Server) CreateInstance(clsid, iid types.GUID) (types.Unknown, error) {
	obj, err := s.GetClassObject(clsid, types.IIDClassFactory)
	if err != nil {
		return nil, err
	}
	factory, ok := obj.(types.ClassFactory)
	if !ok {
		obj.Release()
		return nil, types.ErrNoInterface
	}
	defer factory.Release()
	return factory.CreateInstance(nil, iid)
}

// CanUnloadNow reports whether every object handed out has been released
// and no server lock is held.
func (s *Server) CanUnloadNow() bool {
	ok := s.module.CanUnloadNow()
	s.log.Debug("CanUnloadNow", "result", ok, "instances", s.module.Instances(), "locks", s.module.Locks())
	return ok
}

// Register writes the decoder and property store registrations to store.
func (s *Server) Register(store registration.Store) error {
	s.log.Debug("DllRegisterServer")
	return s.registrar(store).Register(decoder.Info())
}

// Unregister removes the registrations from store.
func (s *Server) Unregister(store registration.Store) error {
	s.log.Debug("DllUnregisterServer")
	return s.registrar(store).Unregister(decoder.Info())
}

func (s *Server) registrar(store registration.Store) *registration.Registrar {
	return registration.New(store,
		registration.WithModulePath(s.modulePath),
		registration.WithChangeNotifier(s.notify),
		registration.WithLogger(s.log),
	)
}
