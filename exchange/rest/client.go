package rest

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/lukehollenback/clientapi/codec"
	"github.com/lukehollenback/clientapi/exchange"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// ErrNoCredentials is returned by private endpoints on a client built without a key pair.
var ErrNoCredentials = errors.New("private endpoint requires credentials")

//
// Client implements the exchange.Client interface over the exchange's HTTP API. Public endpoints
// are plain GET requests; private endpoints are signed POST requests. A Client is safe for
// concurrent use.
//
type Client struct {
	address    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     *zap.Logger
	registerer prometheus.Registerer
	metrics    *metrics
	json       jsoniter.API

	keyID     string
	secret    string
	nonceSeed int64
	signer    *Signer
}

// Option is a client configuration option. Options are applied in order.
type Option func(*Client)

// WithCredentials sets the key pair used to sign private requests.
func WithCredentials(keyID string, secret string) Option {
	return func(o *Client) {
		o.keyID = keyID
		o.secret = secret
	}
}

// WithHTTPClient replaces the HTTP client. WithTimeout is ignored when this is set.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *Client) {
		o.httpClient = httpClient
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Client) {
		o.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(o *Client) {
		o.userAgent = userAgent
	}
}

// WithLogger sets the logger. Requests are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Client) {
		o.logger = logger
	}
}

// WithRegisterer registers the client's request metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *Client) {
		o.registerer = reg
	}
}

//
// WithNonceSeed overrides the first nonce. By default it is the current Unix time in seconds, so
// that a restarted process normally continues above the numbers it used before.
//
func WithNonceSeed(seed int64) Option {
	return func(o *Client) {
		o.nonceSeed = seed
	}
}

//
// New instantiates a client for the API rooted at address. The address always ends up with exactly
// one trailing slash.
//
func New(address string, opts ...Option) *Client {
	o := &Client{
		address:   strings.TrimRight(address, "/") + "/",
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		nonceSeed: time.Now().Unix(),
		json:      exchange.NewWireAPI(),
		metrics:   newMetrics(),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: o.timeout}
	}

	if o.registerer != nil {
		o.metrics.register(o.registerer, o.logger)
	}

	if o.keyID != "" || o.secret != "" {
		o.signer = NewSigner(o.keyID, o.secret, o.nonceSeed)
	}

	return o
}

// Address returns the normalized base address.
func (o *Client) Address() string {
	return o.address
}

// Signer returns the request signer, or nil if the client has no credentials.
func (o *Client) Signer() *Signer {
	return o.signer
}

//
// request performs a public GET of command with params in the query string and decodes the
// response into result.
//
func (o *Client) request(ctx context.Context, command string, params codec.Params, result interface{}) error {
	url := o.address + command
	if query := params.Query(); query != "" {
		url += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		o.metrics.observe(command, outcomeInvalid, time.Now())

		return errors.Wrapf(err, "%s: build request", command)
	}

	return o.do(command, req, result)
}

//
// requestSecure performs a signed POST of command. The nonce is consumed as soon as the request is
// signed, even if sending it fails afterwards.
//
func (o *Client) requestSecure(ctx context.Context, command string, params codec.Params, result interface{}) error {
	if o.signer == nil {
		o.metrics.observe(command, outcomeInvalid, time.Now())

		return errors.Wrap(ErrNoCredentials, command)
	}

	signed, err := o.signer.Sign(params)
	if err != nil {
		o.metrics.observe(command, outcomeInvalid, time.Now())

		return errors.WithMessage(err, command)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.address+command, strings.NewReader(signed.Body))
	if err != nil {
		o.metrics.observe(command, outcomeInvalid, time.Now())

		return errors.Wrapf(err, "%s: build request", command)
	}

	req.Header.Set("Content-Type", FormContentType)
	req.Header.Set(SignHeader, signed.Signature)

	o.logger.Debug("signed request",
		zap.String("command", command),
		zap.Int64("nonce", signed.Nonce),
		zap.Strings("fields", params.Keys()),
	)

	return o.do(command, req, result)
}

//
// do sends the request and decodes a 2xx body into result. Transport failures come back as
// *exchange.TransportError and decoding failures as the codec's own errors; nothing is retried.
//
func (o *Client) do(command string, req *http.Request, result interface{}) error {
	start := time.Now()

	req.Header.Set("Accept", "application/json")
	if o.userAgent != "" {
		req.Header.Set("User-Agent", o.userAgent)
	}

	//
	// Make the request and make sure we actually got a response.
	//
	resp, err := o.httpClient.Do(req)
	if err != nil {
		o.metrics.observe(command, outcomeNetwork, start)
		o.logger.Debug("request failed", zap.String("command", command), zap.Error(err))

		return exchange.NewNetworkError(command, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		o.metrics.observe(command, outcomeNetwork, start)

		return exchange.NewNetworkError(command, errors.Wrap(err, "read body"))
	}

	o.logger.Debug("response received",
		zap.String("command", command),
		zap.String("method", req.Method),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)

	//
	// Make sure the status code was a success.
	//
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		o.metrics.observe(command, outcomeHTTP, start)

		return exchange.NewHTTPError(command, resp.StatusCode, body)
	}

	//
	// Decode the payload into the declared result type.
	//
	if err := codec.Unmarshal(o.json, body, result); err != nil {
		o.metrics.observe(command, outcomeDecode, start)

		return err
	}

	o.metrics.observe(command, outcomeOK, start)

	return nil
}
