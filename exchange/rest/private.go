package rest

import (
	"context"
	"time"

	"github.com/lukehollenback/clientapi/codec"
	"github.com/lukehollenback/clientapi/exchange"
	"github.com/pkg/errors"
)

func (o *Client) Balance(ctx context.Context) (*exchange.Balance, error) {
	var balance exchange.Balance
	if err := o.requestSecure(ctx, balanceCommand, codec.NewParams(), &balance); err != nil {
		return nil, err
	}

	return &balance, nil
}

func (o *Client) GetOrder(ctx context.Context, id int64) (*exchange.Order, error) {
	var order exchange.Order
	if err := o.requestSecure(ctx, getOrderCommand, exchange.OrderIDParams(id), &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (o *Client) ActiveOrders(ctx context.Context, symbol string) ([]exchange.Order, error) {
	var orders []exchange.Order
	if err := o.requestSecure(ctx, myOrdersCommand, exchange.SymbolParams(symbol), &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (o *Client) MyTrades(ctx context.Context, req exchange.MyTradesRequest) ([]exchange.MyTrade, error) {
	var trades []exchange.MyTrade
	if err := o.requestSecure(ctx, myTradesCommand, req.Params(), &trades); err != nil {
		return nil, err
	}

	return trades, nil
}

//
// AddOrder validates the request locally before signing it, so an invalid order never consumes a
// nonce.
//
func (o *Client) AddOrder(ctx context.Context, req exchange.AddOrderRequest) (*exchange.Order, error) {
	if err := req.Validate(); err != nil {
		o.metrics.observe(addOrderCommand, outcomeInvalid, time.Now())

		return nil, errors.WithMessage(err, addOrderCommand)
	}

	var order exchange.Order
	if err := o.requestSecure(ctx, addOrderCommand, req.Params(), &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (o *Client) CancelOrder(ctx context.Context, id int64) (*exchange.Order, error) {
	var order exchange.Order
	if err := o.requestSecure(ctx, cancelOrderCommand, exchange.OrderIDParams(id), &order); err != nil {
		return nil, err
	}

	return &order, nil
}

var _ exchange.Client = (*Client)(nil)
