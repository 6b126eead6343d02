package codec

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

//
// Params is the flattened, unordered set of request parameters of one operation. Every setter
// leaves the field out entirely when the value is zero or renders to an empty string, which is what
// keeps optional parameters out of the query string and body.
//
type Params map[string]string

// FormDelimiters are the characters that would change how a verbatim form body splits or decodes.
const FormDelimiters = "&=%+"

// NewParams returns an empty parameter set.
func NewParams() Params {
	return make(Params)
}

// Text adds a string field.
func (p Params) Text(name string, value string) Params {
	if value != "" {
		p[name] = value
	}

	return p
}

// Int adds an integer field.
func (p Params) Int(name string, value int) Params {
	if value != 0 {
		p[name] = strconv.Itoa(value)
	}

	return p
}

// Int64 adds a 64-bit integer field.
func (p Params) Int64(name string, value int64) Params {
	if value != 0 {
		p[name] = strconv.FormatInt(value, 10)
	}

	return p
}

// Decimal adds a decimal field through EncodeDecimal.
func (p Params) Decimal(name string, value decimal.Decimal) Params {
	if !value.IsZero() {
		p[name] = EncodeDecimal(value)
	}

	return p
}

// Time adds a timestamp field through EncodeTime.
func (p Params) Time(name string, value time.Time) Params {
	if !value.IsZero() {
		p[name] = EncodeTime(value)
	}

	return p
}

// Enum adds an enumeration field by its declared name.
func (p Params) Enum(name string, value fmt.Stringer) Params {
	if value == nil {
		return p
	}

	return p.Text(name, value.String())
}

// Set stores a raw value, empty or not.
func (p Params) Set(name string, value string) Params {
	p[name] = value

	return p
}

// Get returns the value stored under name.
func (p Params) Get(name string) (string, bool) {
	value, ok := p[name]

	return value, ok
}

// Len returns the number of fields.
func (p Params) Len() int {
	return len(p)
}

// Merge copies every field of other into p, overwriting fields with the same name.
func (p Params) Merge(other Params) Params {
	for k, v := range other {
		p[k] = v
	}

	return p
}

// Has reports whether name is present.
func (p Params) Has(name string) bool {
	_, ok := p[name]

	return ok
}

// Clone returns a copy that can be extended without touching p.
func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}

	return c
}

//
// Unsafe returns the first field, in key order, whose name or value contains one of the
// FormDelimiters. Such a field cannot be written verbatim into a body without being read back as
// something else.
//
func (p Params) Unsafe() (string, bool) {
	for _, k := range p.Keys() {
		if strings.ContainsAny(k, FormDelimiters) || strings.ContainsAny(p[k], FormDelimiters) {
			return k, true
		}
	}

	return "", false
}

// Keys returns the field names in byte-wise lexicographic order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

//
// Canonical renders the set as name=value pairs sorted by name and joined with "&". Values are
// written verbatim: this is the exact string that is signed and posted.
//
func (p Params) Canonical() string {
	var b strings.Builder

	for i, k := range p.Keys() {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(p[k])
	}

	return b.String()
}

// Query renders the set like Canonical but with query-escaped values, for use in a URL.
func (p Params) Query() string {
	var b strings.Builder

	for i, k := range p.Keys() {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p[k]))
	}

	return b.String()
}
