package codec

import "fmt"

//
// MalformedNumberError is returned whenever a wire token that should hold a decimal literal or an
// integer count of seconds cannot be parsed as one.
//
type MalformedNumberError struct {
	Token string
	Err   error
}

func (o *MalformedNumberError) Error() string {
	return fmt.Sprintf("malformed number %q", o.Token)
}

func (o *MalformedNumberError) Unwrap() error {
	return o.Err
}

//
// UnknownEnumValueError is returned whenever a wire token matches none of the declared names (or
// codes) of an enumeration.
//
type UnknownEnumValueError struct {
	Type  string
	Token string
}

func (o *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("unknown %s value %q", o.Type, o.Token)
}

//
// MalformedResponseError is returned whenever a response payload does not have the shape of the
// type it is being decoded into.
//
type MalformedResponseError struct {
	Err error
}

func (o *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %s", o.Err)
}

func (o *MalformedResponseError) Unwrap() error {
	return o.Err
}
