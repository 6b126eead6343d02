package exchange

import (
	"errors"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/lukehollenback/clientapi/codec"
	"github.com/shopspring/decimal"
)

const (
	DefaultTradeCount  = 1000
	DefaultCandleCount = 1000
	DefaultInterval    = OneMinute
	DefaultDepth       = 5
)

// TradesRequest selects the public trades of a symbol.
type TradesRequest struct {
	Symbol string
	Count  int // DefaultTradeCount when zero
}

func (o TradesRequest) Params() codec.Params {
	return codec.NewParams().
		Text("symbol", o.Symbol).
		Int("count", orDefault(o.Count, DefaultTradeCount))
}

// CandlesRequest selects the candles of a symbol.
type CandlesRequest struct {
	Symbol    string
	Timeframe Interval // DefaultInterval when zero
	Count     int      // DefaultCandleCount when zero
}

func (o CandlesRequest) Params() codec.Params {
	timeframe := o.Timeframe
	if timeframe == 0 {
		timeframe = DefaultInterval
	}

	return codec.NewParams().
		Text("symbol", o.Symbol).
		Int("timeframe", timeframe.Seconds()).
		Int("count", orDefault(o.Count, DefaultCandleCount))
}

// DepthRequest selects an order book snapshot.
type DepthRequest struct {
	Symbol string
	Depth  int // DefaultDepth when zero
}

func (o DepthRequest) Params() codec.Params {
	return codec.NewParams().
		Text("symbol", o.Symbol).
		Int("depth", orDefault(o.Depth, DefaultDepth))
}

// MyTradesRequest selects the caller's own trades, optionally for one symbol only.
type MyTradesRequest struct {
	Count  int
	Symbol string
}

func (o MyTradesRequest) Params() codec.Params {
	return codec.NewParams().
		Int("count", o.Count).
		Text("symbol", o.Symbol)
}

// AddOrderRequest describes a new limit order.
type AddOrderRequest struct {
	Symbol    string
	Price     decimal.Decimal
	Volume    decimal.Decimal
	Direction OrderType
	Comment   string // optional
}

func (o AddOrderRequest) Params() codec.Params {
	return codec.NewParams().
		Text("symbol", o.Symbol).
		Decimal("price", o.Price).
		Decimal("volume", o.Volume).
		Enum("direction", o.Direction).
		Text("comment", o.Comment)
}

//
// Validate checks the request locally before anything is signed and returns every problem found
// at once.
//
func (o AddOrderRequest) Validate() error {
	var result *multierror.Error

	if o.Symbol == "" {
		result = multierror.Append(result, errors.New("symbol is required"))
	} else if strings.ContainsAny(o.Symbol, codec.FormDelimiters) {
		result = multierror.Append(result, errors.New("symbol must not contain any of "+codec.FormDelimiters))
	}

	if strings.ContainsAny(o.Comment, codec.FormDelimiters) {
		result = multierror.Append(result, errors.New("comment must not contain any of "+codec.FormDelimiters))
	}

	if !o.Price.IsPositive() {
		result = multierror.Append(result, errors.New("price must be positive"))
	}

	if !o.Volume.IsPositive() {
		result = multierror.Append(result, errors.New("volume must be positive"))
	}

	if !o.Direction.Valid() {
		result = multierror.Append(result, errors.New("direction must be Buy or Sell"))
	}

	return result.ErrorOrNil()
}

// OrderIDParams is the parameter set of the endpoints addressing one order.
func OrderIDParams(id int64) codec.Params {
	return codec.NewParams().Int64("id", id)
}

// SymbolParams is the parameter set of the endpoints filtering by symbol only.
func SymbolParams(symbol string) codec.Params {
	return codec.NewParams().Text("symbol", symbol)
}

func orDefault(value int, fallback int) int {
	if value == 0 {
		return fallback
	}

	return value
}
