package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamcharls/netpbm-wic/pkg/types"
)

func TestStore_SetGet(t *testing.T) {
	s := attachTemp(t)

	require.NoError(t, s.SetString(`SOFTWARE\Classes\CLSID\{X}`, "FriendlyName", "Netpbm"))
	require.NoError(t, s.SetString(`SOFTWARE\Classes\CLSID\{X}`, "", "default"))
	require.NoError(t, s.SetUint32(`SOFTWARE\Classes\CLSID\{X}`, "ArbitrationPriority", 10))

	str, err := s.GetString(`SOFTWARE\Classes\CLSID\{X}`, "FriendlyName")
	require.NoError(t, err)
	assert.Equal(t, "Netpbm", str)

	def, err := s.GetString(`SOFTWARE\Classes\CLSID\{X}`, "")
	require.NoError(t, err)
	assert.Equal(t, "default", def)

	n, err := s.GetUint32(`SOFTWARE\Classes\CLSID\{X}`, "ArbitrationPriority")
	require.NoError(t, err)
	assert.Equal(t, uint32(10), n)

	_, err = s.GetUint32(`SOFTWARE\Classes\CLSID\{X}`, "FriendlyName")
	assert.ErrorIs(t, err, types.ErrValueType)
	_, err = s.GetString(`SOFTWARE\Classes\CLSID\{X}`, "ArbitrationPriority")
	assert.ErrorIs(t, err, types.ErrValueType)
	_, err = s.GetString(`SOFTWARE\Classes\CLSID\{X}`, "Missing")
	assert.ErrorIs(t, err, types.ErrKeyNotFound)
}

func TestStore_SetOverwrites(t *testing.T) {
	s := attachTemp(t)

	require.NoError(t, s.SetString(`K`, "v", "first"))
	require.NoError(t, s.SetUint32(`K`, "v", 7))

	n, err := s.GetUint32(`K`, "v")
	require.NoError(t, err)
	assert.Equal(t, uint32(7), n)

	entries, err := s.Entries(`K`)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_SetCreatesAncestors(t *testing.T) {
	s := attachTemp(t)

	require.NoError(t, s.SetString(`\A\B\C\`, "x", "1"))

	for _, path := range []string{`A`, `A\B`, `A\B\C`} {
		ok, err := s.KeyExists(path)
		require.NoError(t, err)
		assert.True(t, ok, path)
	}
	ok, err := s.KeyExists(`A\B\C\D`)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_EmptyPath(t *testing.T) {
	s := attachTemp(t)

	assert.ErrorIs(t, s.SetString("", "x", "y"), types.ErrInvalidArgument)
	assert.ErrorIs(t, s.SetUint32(`\\`, "x", 1), types.ErrInvalidArgument)
	assert.ErrorIs(t, s.DeleteTree(""), types.ErrInvalidArgument)
}

func TestStore_CaseInsensitive(t *testing.T) {
	s := attachTemp(t)

	require.NoError(t, s.SetString(`SOFTWARE\Classes\CLSID\{ABC}`, "FriendlyName", "one"))
	require.NoError(t, s.SetString(`software\classes\clsid\{abc}`, "friendlyname", "two"))

	got, err := s.GetString(`Software\Classes\Clsid\{Abc}`, "FRIENDLYNAME")
	require.NoError(t, err)
	assert.Equal(t, "two", got)

	entries, err := s.Entries("")
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, s.DeleteTree(`SOFTWARE\CLASSES`))
	ok, err := s.KeyExists(`SOFTWARE\Classes\CLSID\{ABC}`)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_DeleteTree(t *testing.T) {
	s := attachTemp(t)

	require.NoError(t, s.SetString(`Root\Decoder`, "Name", "d"))
	require.NoError(t, s.SetString(`Root\Decoder\InprocServer32`, "", "module.dll"))
	require.NoError(t, s.SetString(`Root\DecoderX`, "Name", "sibling"))
	require.NoError(t, s.SetString(`Root\Other`, "Name", "o"))

	require.NoError(t, s.DeleteTree(`Root\Decoder`))

	entries, err := s.Entries("")
	require.NoError(t, err)
	var paths []string
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{`Root\DecoderX`, `Root\Other`}, paths, "sibling with a shared prefix survives")

	err = s.DeleteTree(`Root\Decoder`)
	assert.ErrorIs(t, err, types.ErrKeyNotFound)
}

func TestStore_DeleteTreeEscapesWildcards(t *testing.T) {
	s := attachTemp(t)

	require.NoError(t, s.SetString(`A_B\child`, "x", "1"))
	require.NoError(t, s.SetString(`AxB\child`, "x", "2"))
	require.NoError(t, s.SetString(`A%\child`, "x", "3"))

	require.NoError(t, s.DeleteTree(`A_B`))
	require.NoError(t, s.DeleteTree(`A%`))

	got, err := s.GetString(`AxB\child`, "x")
	require.NoError(t, err)
	assert.Equal(t, "2", got)
}

func TestStore_Entries(t *testing.T) {
	s := attachTemp(t)

	require.NoError(t, s.SetString(`B\Key`, "b", "2"))
	require.NoError(t, s.SetUint32(`A\Key`, "a", 1))
	require.NoError(t, s.SetString(`A\Key\Sub`, "", "3"))
	require.NoError(t, s.SetString(`AB`, "x", "4"))

	all, err := s.Entries("")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	underA, err := s.Entries(`A\`)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Path: `A\Key`, Name: "a", Kind: KindDWORD, Value: "1"},
		{Path: `A\Key\Sub`, Name: "", Kind: KindString, Value: "3"},
	}, underA)

	none, err := s.Entries(`Missing`)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
