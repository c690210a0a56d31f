package propstore

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamcharls/netpbm-wic/internal/com"
	"github.com/teamcharls/netpbm-wic/pkg/types"
)

func TestProviderBeforeInitialize(t *testing.T) {
	p := NewProvider()
	defer p.Release()

	assert.Equal(t, uint32(0), p.GetCount())
	for i := uint32(0); i <= Capacity; i++ {
		_, err := p.GetAt(i)
		assert.ErrorIs(t, err, types.ErrInvalidArgument, "GetAt(%d)", i)
	}
	assert.True(t, p.GetValue(types.KeyImageHorizontalSize).IsEmpty())
}

func TestProviderAfterInitialize(t *testing.T) {
	p := NewProvider()
	defer p.Release()

	require.NoError(t, p.Initialize(strings.NewReader("P5\n1 2\n255\n"), types.ModeRead))

	assert.Equal(t, uint32(5), p.GetCount())
	for i := uint32(0); i < 5; i++ {
		key, err := p.GetAt(i)
		require.NoError(t, err)
		assert.Equal(t, Schema[i], key)
	}
	_, err := p.GetAt(5)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	assert.Len(t, p.Records(), Capacity)
}

func TestProviderIgnoresAccessMode(t *testing.T) {
	for _, mode := range []types.AccessMode{types.ModeRead, types.ModeWrite, types.ModeReadWrite} {
		p := NewProvider()
		require.NoError(t, p.Initialize(nil, mode))
		assert.Equal(t, uint32(5), p.GetCount())
		p.Release()
	}
}

func TestProviderIsReadOnly(t *testing.T) {
	p := NewProvider()
	defer p.Release()

	// Before initialization.
	assert.ErrorIs(t, p.SetValue(types.KeyImageHorizontalSize, types.IntValue(99)), types.ErrAccessDenied)
	assert.ErrorIs(t, p.Commit(), types.ErrAccessDenied)
	assert.Equal(t, uint32(0), p.GetCount())
	assert.True(t, p.GetValue(types.KeyImageHorizontalSize).IsEmpty())

	// After initialization.
	require.NoError(t, p.Initialize(bytes.NewReader(nil), types.ModeReadWrite))
	assert.ErrorIs(t, p.SetValue(types.KeyImageHorizontalSize, types.IntValue(99)), types.ErrAccessDenied)
	assert.ErrorIs(t, p.SetValue(types.KeyImageBitDepth, types.StringValue("8")), types.ErrAccessDenied)
	assert.ErrorIs(t, p.Commit(), types.ErrAccessDenied)

	assert.Equal(t, uint32(5), p.GetCount())
	assert.Equal(t, types.IntValue(1), p.GetValue(types.KeyImageHorizontalSize))
	assert.True(t, p.GetValue(types.KeyImageBitDepth).IsEmpty())
}

func TestProviderReinitializeRejected(t *testing.T) {
	p := NewProvider()
	defer p.Release()

	require.NoError(t, p.Initialize(nil, types.ModeRead))
	assert.ErrorIs(t, p.Initialize(nil, types.ModeRead), types.ErrAlreadyInitialized)
	assert.Equal(t, uint32(5), p.GetCount())
}

func TestProviderQueryInterface(t *testing.T) {
	p := NewProvider()

	tests := []struct {
		name    string
		iid     types.GUID
		wantErr error
	}{
		{"IUnknown", types.IIDUnknown, nil},
		{"IInitializeWithStream", types.IIDInitializeWithStream, nil},
		{"IPropertyStore", types.IIDPropertyStore, nil},
		{"IClassFactory", types.IIDClassFactory, types.ErrNoInterface},
		{"IWICBitmapDecoder", types.IIDBitmapDecoder, types.ErrNoInterface},
		{"random", types.NewGUID(), types.ErrNoInterface},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := p.Count()
			u, err := p.QueryInterface(tt.iid)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				assert.Equal(t, before, p.Count(), "failed query must not add a reference")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, before+1, p.Count())
			u.Release()
		})
	}

	ps, err := types.Query[types.PropertyStore](p, types.IIDPropertyStore)
	require.NoError(t, err)
	ps.Release()
	assert.Equal(t, uint32(0), p.Release())
}

func TestProviderCountsInModule(t *testing.T) {
	m := com.NewModule()
	p := NewProvider(WithModule(m))
	assert.False(t, m.CanUnloadNow())

	store, err := types.Query[types.PropertyStore](p, types.IIDPropertyStore)
	require.NoError(t, err)
	p.Release()
	assert.False(t, m.CanUnloadNow(), "outstanding narrowed handle keeps the module loaded")

	store.Release()
	assert.True(t, m.CanUnloadNow())
}
