package exchange

import (
	"errors"
	"fmt"
	"net/http"
)

const maxErrorBody = 256

//
// TransportError represents a failed HTTP exchange with the API: either the request never got a
// response (Err is set) or the server answered with a non-2xx status (StatusCode and Body are set).
// A request the server refuses because of a bad signature or key also lands here; see
// AuthenticationRejected.
//
type TransportError struct {
	Command    string
	StatusCode int
	Body       []byte
	Err        error
}

// NewHTTPError builds the error for a non-2xx response to command.
func NewHTTPError(command string, statusCode int, body []byte) *TransportError {
	return &TransportError{
		Command:    command,
		StatusCode: statusCode,
		Body:       body,
	}
}

// NewNetworkError builds the error for a request to command that got no usable response.
func NewNetworkError(command string, err error) *TransportError {
	return &TransportError{
		Command: command,
		Err:     err,
	}
}

func (o *TransportError) Error() string {
	if o.Err != nil {
		return fmt.Sprintf("%s: request failed: %s", o.Command, o.Err)
	}

	body := o.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}

	return fmt.Sprintf("%s: server responded with a %d status code: %s", o.Command, o.StatusCode, body)
}

func (o *TransportError) Unwrap() error {
	return o.Err
}

// AuthenticationRejected reports whether the server refused the request's credentials.
func (o *TransportError) AuthenticationRejected() bool {
	return o.StatusCode == http.StatusUnauthorized || o.StatusCode == http.StatusForbidden
}

// IsAuthenticationRejected reports whether err carries a TransportError with a rejected signature.
func IsAuthenticationRejected(err error) bool {
	var te *TransportError

	return errors.As(err, &te) && te.AuthenticationRejected()
}
