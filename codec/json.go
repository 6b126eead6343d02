package codec

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"strconv"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

// Style selects how an encoded token is written into JSON.
type Style int

const (
	// Quoted tokens are written as JSON strings.
	Quoted Style = iota

	// Bare tokens are written verbatim, e.g. as JSON numbers.
	Bare
)

//
// Registry is a json-iterator extension that routes every value of a registered Go type through an
// explicit encode/decode pair instead of the default reflection-driven codec.
//
type Registry struct {
	jsoniter.DummyExtension

	transforms map[reflect.Type]*transform
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		transforms: make(map[reflect.Type]*transform),
	}
}

//
// Register installs the pair used for values of type T. Decoding accepts a JSON string or a JSON
// number and hands its text to decode; a JSON null leaves the zero value in place.
//
func Register[T any](r *Registry, style Style, encode func(T) string, decode func(string) (T, error)) {
	register(r, style, func(v T) (string, bool, error) {
		return encode(v), false, nil
	}, decode)
}

//
// RegisterEnum installs table as the pair used for values of type T. Declared values travel by
// name. An undeclared zero value means "not set" and is written as null, which decodes back to the
// zero value; any other undeclared value makes Marshal fail with an *UnknownEnumValueError.
//
func RegisterEnum[T Integer](r *Registry, table *EnumTable[T]) {
	register(r, Quoted, func(v T) (string, bool, error) {
		if name, ok := table.Name(v); ok {
			return name, false, nil
		}

		if v == 0 {
			return "", true, nil
		}

		return "", false, &UnknownEnumValueError{Type: table.TypeName(), Token: strconv.FormatInt(int64(v), 10)}
	}, table.Parse)
}

func register[T any](r *Registry, style Style, encode func(T) (string, bool, error), decode func(string) (T, error)) {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	r.transforms[typ] = &transform{
		name:  typ.String(),
		style: style,
		encode: func(ptr unsafe.Pointer) (string, bool, error) {
			return encode(*(*T)(ptr))
		},
		decode: func(ptr unsafe.Pointer, token string) error {
			value, err := decode(token)
			if err != nil {
				return err
			}

			*(*T)(ptr) = value

			return nil
		},
		empty: func(ptr unsafe.Pointer) bool {
			return reflect.ValueOf((*T)(ptr)).Elem().IsZero()
		},
	}
}

// CreateDecoder implements jsoniter.Extension.
func (r *Registry) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	if t, ok := r.transforms[typ.Type1()]; ok {
		return t
	}

	return nil
}

// CreateEncoder implements jsoniter.Extension.
func (r *Registry) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	if t, ok := r.transforms[typ.Type1()]; ok {
		return t
	}

	return nil
}

type transform struct {
	name   string
	style  Style
	encode func(ptr unsafe.Pointer) (token string, null bool, err error)
	decode func(ptr unsafe.Pointer, token string) error
	empty  func(ptr unsafe.Pointer) bool
}

func (t *transform) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	var token string

	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()

		return
	case jsoniter.StringValue:
		token = iter.ReadString()
	case jsoniter.NumberValue:
		token = string(iter.ReadNumber())
	default:
		iter.Skip()
		iter.ReportError("decode "+t.name, "expected a string or a number")

		return
	}

	if iter.Error != nil && iter.Error != io.EOF {
		return
	}

	if err := t.decode(ptr, token); err != nil {
		//
		// The struct decoders flatten iter.Error into a string on the way up, so the typed cause
		// travels in the attachment instead.
		//
		if iter.Attachment == nil {
			iter.Attachment = err
		}

		iter.ReportError("decode "+t.name, err.Error())
	}
}

func (t *transform) IsEmpty(ptr unsafe.Pointer) bool {
	return t.empty(ptr)
}

func (t *transform) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	token, null, err := t.encode(ptr)

	switch {
	case err != nil:
		if stream.Attachment == nil {
			stream.Attachment = err
		}
		if stream.Error == nil {
			stream.Error = err
		}

		stream.WriteNil()
	case null:
		stream.WriteNil()
	case t.style == Quoted:
		stream.WriteString(token)
	default:
		stream.WriteRaw(token)
	}
}

//
// NewAPI freezes a json-iterator configuration with the registry installed. Field names match
// case-insensitively.
//
func NewAPI(r *Registry) jsoniter.API {
	api := jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()

	api.RegisterExtension(r)

	return api
}

//
// Unmarshal decodes data into v. Failures of a registered transform come back as the transform's
// own error (e.g. *MalformedNumberError); every other failure is a *MalformedResponseError.
//
func Unmarshal(api jsoniter.API, data []byte, v interface{}) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return &MalformedResponseError{Err: errors.New("empty body")}
	}

	iter := api.BorrowIterator(data)
	defer api.ReturnIterator(iter)

	iter.Error = nil
	iter.Attachment = nil

	iter.ReadVal(v)

	if cause, ok := iter.Attachment.(error); ok {
		return cause
	}

	if iter.Error != nil && iter.Error != io.EOF {
		return &MalformedResponseError{Err: iter.Error}
	}

	//
	// Only whitespace may follow the top-level value. Running off the end of the buffer is the one
	// thing that leaves io.EOF behind, so anything else means there is a trailing byte.
	//
	iter.Error = nil
	if iter.WhatIsNext() != jsoniter.InvalidValue || iter.Error != io.EOF {
		return &MalformedResponseError{Err: errors.New("unexpected data after the top-level value")}
	}

	return nil
}

//
// Marshal encodes v with the registered transforms. A value a transform refuses to encode comes
// back as the transform's own error.
//
func Marshal(api jsoniter.API, v interface{}) ([]byte, error) {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)

	stream.Error = nil
	stream.Attachment = nil

	stream.WriteVal(v)

	if cause, ok := stream.Attachment.(error); ok {
		return nil, cause
	}

	if stream.Error != nil {
		return nil, stream.Error
	}

	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())

	return out, nil
}
