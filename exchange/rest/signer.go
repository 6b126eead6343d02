package rest

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/lukehollenback/clientapi/codec"
	"github.com/pkg/errors"
)

// ErrReservedParam is returned when a command tries to send a field the signer owns.
var ErrReservedParam = errors.New("parameter name is reserved for request signing")

// ErrUnsafeParam is returned when a field would not survive being written verbatim into the body.
var ErrUnsafeParam = errors.New("parameter contains a form delimiter")

//
// Signer authenticates private requests. It owns the key pair and the request nonce: a counter
// that starts at the seed and goes up by exactly one for every signed request. The counter is
// atomic, so one Signer can be shared by any number of goroutines and every request still gets a
// distinct, strictly increasing number.
//
type Signer struct {
	keyID  string
	secret string
	nonce  int64
}

// NewSigner returns a signer whose first request will carry seed as its nonce.
func NewSigner(keyID string, secret string, seed int64) *Signer {
	return &Signer{
		keyID:  keyID,
		secret: secret,
		nonce:  seed,
	}
}

// KeyID returns the public half of the key pair.
func (o *Signer) KeyID() string {
	return o.keyID
}

// Next returns the nonce the next signed request will use, without consuming it.
func (o *Signer) Next() int64 {
	return atomic.LoadInt64(&o.nonce)
}

// SignedRequest is the transmitted form of a private request.
type SignedRequest struct {
	Body      string
	Signature string
	Nonce     int64
}

//
// Sign consumes one nonce, adds the "number" and "keyid" fields to params, and returns the
// canonical body together with its signature. The caller's params are left untouched. Fields
// carrying any of codec.FormDelimiters are refused before a nonce is taken, since the server would
// split or decode them into different fields than the ones that were signed.
//
func (o *Signer) Sign(params codec.Params) (*SignedRequest, error) {
	for _, name := range [...]string{NumberParam, KeyIDParam} {
		if params.Has(name) {
			return nil, errors.Wrapf(ErrReservedParam, "%q", name)
		}
	}

	fields := params.Clone().Set(KeyIDParam, o.keyID)
	if name, ok := fields.Unsafe(); ok {
		return nil, errors.Wrapf(ErrUnsafeParam, "%q", name)
	}

	nonce := atomic.AddInt64(&o.nonce, 1) - 1

	body := fields.
		Set(NumberParam, strconv.FormatInt(nonce, 10)).
		Canonical()

	return &SignedRequest{
		Body:      body,
		Signature: Signature(body, o.secret),
		Nonce:     nonce,
	}, nil
}

//
// Signature returns the uppercase hex SHA-256 digest of the canonical string followed by the
// secret. The secret itself is never part of what is sent.
//
func Signature(canonical string, secret string) string {
	sum := sha256.Sum256([]byte(canonical + secret))

	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
