package rest

import (
	"context"

	"github.com/lukehollenback/clientapi/codec"
	"github.com/lukehollenback/clientapi/exchange"
)

func (o *Client) Symbols(ctx context.Context) ([]exchange.Symbol, error) {
	var symbols []exchange.Symbol
	if err := o.request(ctx, symbolsCommand, codec.NewParams(), &symbols); err != nil {
		return nil, err
	}

	return symbols, nil
}

func (o *Client) Trades(ctx context.Context, req exchange.TradesRequest) ([]exchange.Trade, error) {
	var trades []exchange.Trade
	if err := o.request(ctx, tradesCommand, req.Params(), &trades); err != nil {
		return nil, err
	}

	return trades, nil
}

func (o *Client) Candles(ctx context.Context, req exchange.CandlesRequest) ([]exchange.Candle, error) {
	var candles []exchange.Candle
	if err := o.request(ctx, candlesCommand, req.Params(), &candles); err != nil {
		return nil, err
	}

	return candles, nil
}

func (o *Client) Depth(ctx context.Context, req exchange.DepthRequest) (*exchange.Depth, error) {
	var depth exchange.Depth
	if err := o.request(ctx, depthCommand, req.Params(), &depth); err != nil {
		return nil, err
	}

	return &depth, nil
}
