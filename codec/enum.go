package codec

import (
	"strconv"
	"strings"
)

// Integer is the set of underlying types an enumeration may be declared on.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

//
// EnumTable holds the declared names of an enumeration. Values travel on the wire by name; the
// numeric code is only accepted on decode, and only when it is one of the declared values.
//
type EnumTable[T Integer] struct {
	typeName string
	names    map[T]string
	values   map[string]T
}

//
// NewEnumTable builds the table for the enumeration called typeName from its value-to-name
// mapping. Names must be unique.
//
func NewEnumTable[T Integer](typeName string, names map[T]string) *EnumTable[T] {
	o := &EnumTable[T]{
		typeName: typeName,
		names:    make(map[T]string, len(names)),
		values:   make(map[string]T, len(names)),
	}

	for value, name := range names {
		o.names[value] = name
		o.values[name] = value
	}

	return o
}

// Name returns the declared name of value, or false if value is not declared.
func (o *EnumTable[T]) Name(value T) (string, bool) {
	name, ok := o.names[value]

	return name, ok
}

//
// Parse resolves a wire token to its value. An exact name match wins, then a case-insensitive one,
// then a declared numeric code. Anything else is an *UnknownEnumValueError.
//
func (o *EnumTable[T]) Parse(token string) (T, error) {
	if value, ok := o.values[token]; ok {
		return value, nil
	}

	for name, value := range o.values {
		if strings.EqualFold(name, token) {
			return value, nil
		}
	}

	if code, err := strconv.ParseInt(token, 10, 64); err == nil {
		if _, ok := o.names[T(code)]; ok && int64(T(code)) == code {
			return T(code), nil
		}
	}

	var zero T

	return zero, &UnknownEnumValueError{Type: o.typeName, Token: token}
}

// FromCode resolves a numeric code to its value if it is declared.
func (o *EnumTable[T]) FromCode(code int) (T, error) {
	if _, ok := o.names[T(code)]; ok && int(T(code)) == code {
		return T(code), nil
	}

	var zero T

	return zero, &UnknownEnumValueError{Type: o.typeName, Token: strconv.Itoa(code)}
}

// TypeName returns the name the enumeration was declared with.
func (o *EnumTable[T]) TypeName() string {
	return o.typeName
}
