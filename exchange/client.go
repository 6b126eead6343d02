package exchange

import (
	"context"
)

//
// Client generically provides an interface to an object that can be used to interact with the
// exchange's REST API: public market data plus the signed account and order endpoints.
//
// Whenever an endpoint fails – whether due to a network failure, an HTTP error, or a payload that
// cannot be decoded – the error is returned as is and no partial result is provided.
//
type Client interface {

	//
	// Symbols lists every instrument traded on the exchange.
	//
	Symbols(ctx context.Context) ([]Symbol, error)

	//
	// Trades retrieves the most recent public trades of a symbol.
	//
	Trades(ctx context.Context, req TradesRequest) ([]Trade, error)

	//
	// Candles retrieves the most recent candles of a symbol for the requested timeframe.
	//
	Candles(ctx context.Context, req CandlesRequest) ([]Candle, error)

	//
	// Depth retrieves an order book snapshot of a symbol.
	//
	Depth(ctx context.Context, req DepthRequest) (*Depth, error)

	//
	// Balance retrieves the caller's accounts. Requires credentials.
	//
	Balance(ctx context.Context) (*Balance, error)

	//
	// GetOrder retrieves one of the caller's orders. Requires credentials.
	//
	GetOrder(ctx context.Context, id int64) (*Order, error)

	//
	// ActiveOrders lists the caller's resting orders on a symbol. Requires credentials.
	//
	ActiveOrders(ctx context.Context, symbol string) ([]Order, error)

	//
	// MyTrades retrieves the caller's own trades. Requires credentials.
	//
	MyTrades(ctx context.Context, req MyTradesRequest) ([]MyTrade, error)

	//
	// AddOrder places a limit order. A rejected order still comes back successfully; the reason
	// is carried by its Status. Requires credentials.
	//
	AddOrder(ctx context.Context, req AddOrderRequest) (*Order, error)

	//
	// CancelOrder cancels one of the caller's orders. Requires credentials.
	//
	CancelOrder(ctx context.Context, id int64) (*Order, error)
}
