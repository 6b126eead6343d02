package exchange

import (
	"errors"
	"net/http"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/lukehollenback/clientapi/codec"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestDefaults(t *testing.T) {
	assert.Equal(t, codec.Params{"symbol": "BTC", "count": "1000"}, TradesRequest{Symbol: "BTC"}.Params())
	assert.Equal(t, codec.Params{"symbol": "BTC", "depth": "5"}, DepthRequest{Symbol: "BTC"}.Params())
	assert.Equal(t,
		codec.Params{"symbol": "BTC", "timeframe": "60", "count": "1000"},
		CandlesRequest{Symbol: "BTC"}.Params())
	assert.Equal(t,
		codec.Params{"timeframe": "900", "count": "10"},
		CandlesRequest{Timeframe: FifteenMinute, Count: 10}.Params())
}

func TestAddOrderParamsOmitsComment(t *testing.T) {
	params := AddOrderRequest{
		Symbol:    "BTC",
		Price:     decimal.RequireFromString("100.5"),
		Volume:    decimal.NewFromInt(2),
		Direction: Buy,
	}.Params()

	assert.Equal(t, codec.Params{"symbol": "BTC", "price": "100.5", "volume": "2", "direction": "Buy"}, params)
}

func TestMyTradesParams(t *testing.T) {
	assert.Equal(t, codec.Params{"count": "3"}, MyTradesRequest{Count: 3}.Params())
	assert.Equal(t, codec.Params{"count": "3", "symbol": "BTC"}, MyTradesRequest{Count: 3, Symbol: "BTC"}.Params())
	assert.Equal(t, codec.Params{"id": "9"}, OrderIDParams(9))
	assert.Equal(t, codec.Params{}, SymbolParams(""))
}

func TestAddOrderValidate(t *testing.T) {
	valid := AddOrderRequest{
		Symbol:    "BTC",
		Price:     decimal.NewFromInt(1),
		Volume:    decimal.NewFromInt(1),
		Direction: Sell,
	}
	assert.NoError(t, valid.Validate())

	invalid := valid
	invalid.Price = decimal.NewFromInt(-1)
	invalid.Direction = 0

	var merr *multierror.Error
	require.True(t, errors.As(invalid.Validate(), &merr))
	assert.Len(t, merr.Errors, 2)
}

func TestAddOrderValidateRejectsFormDelimiters(t *testing.T) {
	req := AddOrderRequest{
		Symbol:    "BTC_USD",
		Price:     decimal.NewFromInt(1),
		Volume:    decimal.NewFromInt(1),
		Direction: Buy,
		Comment:   "x&number=1",
	}

	var merr *multierror.Error
	require.True(t, errors.As(req.Validate(), &merr))
	assert.Len(t, merr.Errors, 1)

	req.Comment = "spaces are fine"
	req.Symbol = "BTC+USD"
	require.True(t, errors.As(req.Validate(), &merr))
	assert.Len(t, merr.Errors, 1)
}

func TestTransportErrorMessages(t *testing.T) {
	httpErr := NewHTTPError("balance", http.StatusForbidden, []byte("bad sign"))
	assert.Equal(t, "balance: server responded with a 403 status code: bad sign", httpErr.Error())
	assert.True(t, httpErr.AuthenticationRejected())

	cause := errors.New("connection refused")
	netErr := NewNetworkError("symbols", cause)
	assert.Equal(t, "symbols: request failed: connection refused", netErr.Error())
	assert.True(t, errors.Is(netErr, cause))
	assert.False(t, IsAuthenticationRejected(netErr))
}
