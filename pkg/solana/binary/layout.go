package binary

import (
	"crypto/ed25519"
	"fmt"

	"github.com/pkg/errors"
)

// ErrTruncatedInput indicates a buffer is shorter than the layout being decoded.
var ErrTruncatedInput = errors.New("truncated input")

// Kind is the fixed-width encoding of a single layout field.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindInt64
	KindBool
	KindKey
	KindNested
)

func (k Kind) String() string {
	switch k {
	case KindUint8:
		return "u8"
	case KindUint16:
		return "u16"
	case KindUint32:
		return "u32"
	case KindUint64:
		return "u64"
	case KindInt64:
		return "i64"
	case KindBool:
		return "bool"
	case KindKey:
		return "publicKey"
	case KindNested:
		return "struct"
	}
	return "unknown"
}

// Field is a named, fixed-width member of a Layout.
type Field struct {
	Name string
	Kind Kind

	// Set only for KindNested
	Layout *Layout
}

func Uint8(name string) Field  { return Field{Name: name, Kind: KindUint8} }
func Uint16(name string) Field { return Field{Name: name, Kind: KindUint16} }
func Uint32(name string) Field { return Field{Name: name, Kind: KindUint32} }
func Uint64(name string) Field { return Field{Name: name, Kind: KindUint64} }
func Int64(name string) Field  { return Field{Name: name, Kind: KindInt64} }
func Bool(name string) Field   { return Field{Name: name, Kind: KindBool} }
func Key(name string) Field    { return Field{Name: name, Kind: KindKey} }

func Nested(name string, layout Layout) Field {
	return Field{Name: name, Kind: KindNested, Layout: &layout}
}

// Size returns the encoded width of the field in bytes.
func (f Field) Size() int {
	switch f.Kind {
	case KindUint8, KindBool:
		return 1
	case KindUint16:
		return 2
	case KindUint32:
		return 4
	case KindUint64, KindInt64:
		return 8
	case KindKey:
		return ed25519.PublicKeySize
	case KindNested:
		if f.Layout == nil {
			return 0
		}
		return f.Layout.Size()
	}
	return 0
}

// Record holds decoded field values keyed by field name. Values use the Go type
// matching the field kind: uint8, uint16, uint32, uint64, int64, bool,
// ed25519.PublicKey and Record for nested layouts.
type Record map[string]interface{}

// Layout is an ordered, packed sequence of fixed-width fields.
type Layout struct {
	fields []Field
}

func NewLayout(fields ...Field) Layout {
	copied := make([]Field, len(fields))
	copy(copied, fields)
	return Layout{fields: copied}
}

func (l Layout) Fields() []Field {
	copied := make([]Field, len(l.fields))
	copy(copied, l.fields)
	return copied
}

// Size is the sum of all field widths. There is no padding or alignment.
func (l Layout) Size() int {
	var size int
	for _, f := range l.fields {
		size += f.Size()
	}
	return size
}

// Encode serializes the record in field declaration order. Fields missing from
// the record are written as zero values. A value whose Go type doesn't match the
// declared kind is a programming error and panics.
func (l Layout) Encode(r Record) []byte {
	dst := make([]byte, l.Size())

	var offset int
	l.encodeInto(dst, r, &offset)

	return dst
}

func (l Layout) encodeInto(dst []byte, r Record, offset *int) {
	for _, f := range l.fields {
		v, ok := r[f.Name]

		switch f.Kind {
		case KindUint8:
			var typed uint8
			if ok {
				typed = mustType[uint8](f, v)
			}
			PutUint8(dst[*offset:], typed, offset)
		case KindUint16:
			var typed uint16
			if ok {
				typed = mustType[uint16](f, v)
			}
			PutUint16(dst[*offset:], typed, offset)
		case KindUint32:
			var typed uint32
			if ok {
				typed = mustType[uint32](f, v)
			}
			PutUint32(dst[*offset:], typed, offset)
		case KindUint64:
			var typed uint64
			if ok {
				typed = mustType[uint64](f, v)
			}
			PutUint64(dst[*offset:], typed, offset)
		case KindInt64:
			var typed int64
			if ok {
				typed = mustType[int64](f, v)
			}
			PutInt64(dst[*offset:], typed, offset)
		case KindBool:
			var typed bool
			if ok {
				typed = mustType[bool](f, v)
			}
			PutBool(dst[*offset:], typed, offset)
		case KindKey:
			var typed []byte
			if ok {
				switch key := v.(type) {
				case ed25519.PublicKey:
					typed = key
				case []byte:
					typed = key
				case [ed25519.PublicKeySize]byte:
					typed = key[:]
				default:
					panic(fmt.Sprintf("field %s: expected public key, got %T", f.Name, v))
				}
			}
			PutKey32(dst[*offset:], typed, offset)
		case KindNested:
			var nested Record
			if ok {
				nested = mustType[Record](f, v)
			}
			if f.Layout != nil {
				f.Layout.encodeInto(dst, nested, offset)
			}
		default:
			panic(fmt.Sprintf("field %s: unsupported kind %d", f.Name, f.Kind))
		}
	}
}

// Decode reads fields in declaration order. Only the structural size is
// validated; trailing bytes beyond Size() are ignored.
func (l Layout) Decode(src []byte) (Record, error) {
	if len(src) < l.Size() {
		return nil, errors.Wrapf(ErrTruncatedInput, "need %d bytes, have %d", l.Size(), len(src))
	}

	var offset int
	return l.decodeFrom(src, &offset), nil
}

func (l Layout) decodeFrom(src []byte, offset *int) Record {
	r := make(Record, len(l.fields))

	for _, f := range l.fields {
		switch f.Kind {
		case KindUint8:
			var v uint8
			GetUint8(src[*offset:], &v, offset)
			r[f.Name] = v
		case KindUint16:
			var v uint16
			GetUint16(src[*offset:], &v, offset)
			r[f.Name] = v
		case KindUint32:
			var v uint32
			GetUint32(src[*offset:], &v, offset)
			r[f.Name] = v
		case KindUint64:
			var v uint64
			GetUint64(src[*offset:], &v, offset)
			r[f.Name] = v
		case KindInt64:
			var v int64
			GetInt64(src[*offset:], &v, offset)
			r[f.Name] = v
		case KindBool:
			var v bool
			GetBool(src[*offset:], &v, offset)
			r[f.Name] = v
		case KindKey:
			var v ed25519.PublicKey
			GetKey32(src[*offset:], &v, offset)
			r[f.Name] = v
		case KindNested:
			if f.Layout != nil {
				r[f.Name] = f.Layout.decodeFrom(src, offset)
			} else {
				r[f.Name] = Record{}
			}
		}
	}

	return r
}

func mustType[T any](f Field, v interface{}) T {
	typed, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("field %s: expected %s value, got %T", f.Name, f.Kind, v))
	}
	return typed
}
