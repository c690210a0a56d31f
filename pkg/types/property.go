package types

import (
	"fmt"
	"strconv"
)

// PropertyKey names one piece of image metadata: a format id plus a
// property id within that format. Keys compare by value.
type PropertyKey struct {
	FormatID   GUID
	PropertyID uint32
}

// String returns "{FMTID} pid".
func (k PropertyKey) String() string {
	return fmt.Sprintf("%s %d", k.FormatID, k.PropertyID)
}

// imageFormatID is the format id of the host's image property set.
var imageFormatID = MustParseGUID("{6444048F-4C8B-11D1-8B70-080036B11A03}")

// Image property keys.
var (
	KeyImageHorizontalSize       = PropertyKey{FormatID: imageFormatID, PropertyID: 3}
	KeyImageVerticalSize         = PropertyKey{FormatID: imageFormatID, PropertyID: 4}
	KeyImageHorizontalResolution = PropertyKey{FormatID: imageFormatID, PropertyID: 5}
	KeyImageVerticalResolution   = PropertyKey{FormatID: imageFormatID, PropertyID: 6}
	KeyImageBitDepth             = PropertyKey{FormatID: imageFormatID, PropertyID: 7}
)

// keyNames maps the known keys to their canonical names.
var keyNames = map[PropertyKey]string{
	KeyImageHorizontalSize:       "System.Image.HorizontalSize",
	KeyImageVerticalSize:         "System.Image.VerticalSize",
	KeyImageHorizontalResolution: "System.Image.HorizontalResolution",
	KeyImageVerticalResolution:   "System.Image.VerticalResolution",
	KeyImageBitDepth:             "System.Image.BitDepth",
}

// KeyName returns the canonical name of a known key, or its String form.
func KeyName(k PropertyKey) string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return k.String()
}

// ValueKind tags the variant held by a Value.
type ValueKind uint8

// Value kinds. The zero Value is KindEmpty.
const (
	KindEmpty ValueKind = iota
	KindInt
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a tagged variant holding an integer, a string, or nothing.
// Values are immutable and comparable with ==.
type Value struct {
	kind ValueKind
	num  int64
	str  string
}

// EmptyValue returns the value reported for unset or unknown properties.
func EmptyValue() Value { return Value{} }

// IntValue returns an integer Value.
func IntValue(v int64) Value { return Value{kind: KindInt, num: v} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// Kind reports which variant v holds.
func (v Value) Kind() ValueKind { return v.kind }

// IsEmpty reports whether v holds no value.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// Int returns the integer held by v; ok is false for other kinds.
func (v Value) Int() (n int64, ok bool) {
	return v.num, v.kind == KindInt
}

// Str returns the string held by v; ok is false for other kinds.
func (v Value) Str() (s string, ok bool) {
	return v.str, v.kind == KindString
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindString:
		return strconv.Quote(v.str)
	default:
		return "<empty>"
	}
}

// PropertyRecord is one key/value entry of a property table.
type PropertyRecord struct {
	Key   PropertyKey
	Value Value
}
