package types

import "io"

// Unknown is the base capability of every object handed to the host.
// QueryInterface narrows the object to the capability named by iid and
// returns a new reference to it; callers Release every handle they own.
type Unknown interface {
	// QueryInterface returns a handle to the requested capability.
	// Returns ErrNoInterface if the object does not support iid.
	QueryInterface(iid GUID) (Unknown, error)

	// AddRef adds a reference and returns the new count.
	AddRef() uint32

	// Release drops a reference and returns the remaining count.
	// The object is destroyed when the count reaches zero.
	Release() uint32
}

// AccessMode is the read/write intent a host passes to Initialize.
type AccessMode uint32

// Access modes, numerically equal to the host's storage mode flags.
const (
	ModeRead      AccessMode = 0x0
	ModeWrite     AccessMode = 0x1
	ModeReadWrite AccessMode = 0x2
)

// InitializeWithStream binds an object to the bytes of one image.
type InitializeWithStream interface {
	Unknown

	// Initialize binds the object to stream. It may be called once;
	// later calls return ErrAlreadyInitialized.
	Initialize(stream io.Reader, mode AccessMode) error
}

// PropertyStore exposes image metadata as an ordered key/value set.
type PropertyStore interface {
	Unknown

	// GetCount returns the number of properties, zero before Initialize.
	GetCount() uint32

	// GetAt returns the key at index. Returns ErrInvalidArgument when
	// index >= GetCount().
	GetAt(index uint32) (PropertyKey, error)

	// GetValue returns the value stored under key, or the empty Value
	// when no such property exists.
	GetValue(key PropertyKey) Value

	// SetValue stores a value. Read-only stores return ErrAccessDenied.
	SetValue(key PropertyKey, value Value) error

	// Commit persists pending changes. Read-only stores return
	// ErrAccessDenied.
	Commit() error
}

// ClassFactory constructs instances of one class.
type ClassFactory interface {
	Unknown

	// CreateInstance builds a new object and narrows it to iid.
	// A non-nil outer requests aggregation, which is refused with
	// ErrNoAggregation.
	CreateInstance(outer Unknown, iid GUID) (Unknown, error)

	// LockServer keeps the module loaded while locked.
	LockServer(lock bool) error
}

// BitmapDecoder is the decoder class capability.
type BitmapDecoder interface {
	Unknown

	// ContainerFormat returns the container format the decoder reads.
	ContainerFormat() GUID

	// Info describes the codec.
	Info() DecoderInfo
}

// DecoderInfo is the static description of a codec. Registration
// writes it to the host registry.
type DecoderInfo struct {
	ClassID                GUID
	ContainerFormat        GUID
	Vendor                 GUID
	Author                 string
	Description            string
	FriendlyName           string
	Version                string
	SpecVersion            string
	ColorManagementVersion string
	FileExtensions         []string
	MIMETypes              []string
	ArbitrationPriority    uint32
	SupportsAnimation      bool
	SupportsChromaKey      bool
	SupportsLossless       bool
	SupportsMultiframe     bool
}

// Query narrows u to the capability iid and asserts the result to T.
// The returned handle carries its own reference.
func Query[T Unknown](u Unknown, iid GUID) (T, error) {
	var zero T
	if u == nil {
		return zero, ErrInvalidArgument
	}
	obj, err := u.QueryInterface(iid)
	if err != nil {
		return zero, err
	}
	t, ok := obj.(T)
	if !ok {
		obj.Release()
		return zero, ErrNoInterface
	}
	return t, nil
}
