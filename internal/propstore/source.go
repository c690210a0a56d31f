package propstore

import (
	"io"

	"github.com/teamcharls/netpbm-wic/pkg/types"
)

// ValueSource reports property values for an image stream. A source that
// cannot read the stream returns an error; Bind surfaces it as
// ErrStreamUnreadable.
type ValueSource interface {
	Values(stream io.Reader) (map[types.PropertyKey]types.Value, error)
}

// ValueSourceFunc adapts a function to ValueSource.
type ValueSourceFunc func(stream io.Reader) (map[types.PropertyKey]types.Value, error)

// Values calls f(stream).
func (f ValueSourceFunc) Values(stream io.Reader) (map[types.PropertyKey]types.Value, error) {
	return f(stream)
}

// PlaceholderSource reports fixed sizes without reading the stream.
//
// TODO: read width, height and maxval from the Netpbm header once the
// decoder class gains a real decode path.
var PlaceholderSource ValueSource = ValueSourceFunc(placeholderValues)

func placeholderValues(io.Reader) (map[types.PropertyKey]types.Value, error) {
	return map[types.PropertyKey]types.Value{
		types.KeyImageHorizontalSize: types.IntValue(1),
		types.KeyImageVerticalSize:   types.IntValue(2),
	}, nil
}
