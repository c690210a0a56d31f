package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamcharls/netpbm-wic/internal/com"
	"github.com/teamcharls/netpbm-wic/pkg/types"
)

func TestInfo(t *testing.T) {
	info := Info()

	assert.Equal(t, types.DecoderClassID, info.ClassID)
	assert.Equal(t, types.ContainerFormatNetpbm, info.ContainerFormat)
	assert.Equal(t, []string{".pgm", ".ppm"}, info.FileExtensions)
	assert.Len(t, info.MIMETypes, len(info.FileExtensions))
	assert.Equal(t, uint32(10), info.ArbitrationPriority)
	assert.True(t, info.SupportsLossless)
	assert.False(t, info.SupportsAnimation)
	assert.False(t, info.SupportsMultiframe)
	assert.Equal(t, Version, info.Version)
}

func TestDecoderQueryInterface(t *testing.T) {
	d := New(nil)

	bd, err := types.Query[types.BitmapDecoder](d, types.IIDBitmapDecoder)
	require.NoError(t, err)
	assert.Equal(t, types.ContainerFormatNetpbm, bd.ContainerFormat())
	assert.Equal(t, Info(), bd.Info())
	bd.Release()

	for _, iid := range []types.GUID{types.IIDPropertyStore, types.IIDInitializeWithStream, types.IIDClassFactory} {
		u, err := d.QueryInterface(iid)
		assert.ErrorIs(t, err, types.ErrNoInterface)
		assert.Nil(t, u)
	}
	assert.Equal(t, uint32(0), d.Release())
}

func TestFactoryCreateInstance(t *testing.T) {
	m := com.NewModule()
	f := NewFactory(m, nil)
	defer f.Release()

	objs := make([]types.Unknown, 0, 3)
	for i := 0; i < 3; i++ {
		u, err := f.CreateInstance(nil, types.IIDBitmapDecoder)
		require.NoError(t, err)
		objs = append(objs, u)
	}
	assert.Equal(t, int64(3), m.Instances())

	for i, u := range objs {
		assert.False(t, m.CanUnloadNow(), "before release %d", i)
		u.Release()
	}
	assert.True(t, m.CanUnloadNow())
}

func TestFactoryRefusesAggregationAndUnknownInterface(t *testing.T) {
	m := com.NewModule()
	f := NewFactory(m, nil)

	outer := New(nil)
	defer outer.Release()

	u, err := f.CreateInstance(outer, types.IIDUnknown)
	assert.ErrorIs(t, err, types.ErrNoAggregation)
	assert.Nil(t, u)

	u, err = f.CreateInstance(nil, types.IIDPropertyStore)
	assert.ErrorIs(t, err, types.ErrNoInterface)
	assert.Nil(t, u)

	assert.Equal(t, int64(0), m.Instances())
}

func TestFactoryLockServer(t *testing.T) {
	m := com.NewModule()
	f := NewFactory(m, nil)

	require.NoError(t, f.LockServer(true))
	require.NoError(t, f.LockServer(true))
	assert.Equal(t, int64(2), m.Locks())
	require.NoError(t, f.LockServer(false))
	require.NoError(t, f.LockServer(false))
	assert.True(t, m.CanUnloadNow())
}
