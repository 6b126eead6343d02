package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/logrusorgru/aurora"
	"github.com/lukehollenback/clientapi/codec"
	"github.com/lukehollenback/clientapi/exchange"
	"github.com/lukehollenback/clientapi/writer"
	"github.com/pkg/errors"
)

const commandUsage = `  symbols                                   List instruments.
  trades SYMBOL [COUNT]                     Recent public trades.
  candles SYMBOL [TIMEFRAME] [COUNT]        Recent candles (TIMEFRAME: seconds, 1m, 5m, 1h, ...).
  depth SYMBOL [DEPTH]                      Order book snapshot.
  balance                                   Account balances.
  order ID                                  One of your orders.
  orders SYMBOL                             Your active orders on a symbol.
  mytrades COUNT [SYMBOL]                   Your own trades.
  buy|sell SYMBOL PRICE VOLUME [COMMENT]    Place a limit order.
  cancel ID                                 Cancel one of your orders.
`

//
// usageError marks a mistake on the command line, as opposed to a failure of the API call itself.
//
type usageError struct {
	msg string
}

func (o *usageError) Error() string {
	return o.msg
}

func usagef(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

//
// app runs one command against an exchange client and prints the result. When csvPath is set,
// trades and candles go to that file instead of out. The file is only created by a command that
// writes to it.
//
type app struct {
	client  exchange.Client
	out     io.Writer
	au      aurora.Aurora
	csvPath string
	csv     *writer.Writer
	csvFile io.Closer
}

//
// csvOutput returns the CSV writer, creating the file on first use, or nil when output goes to the
// terminal.
//
func (o *app) csvOutput() (*writer.Writer, error) {
	if o.csv != nil || o.csvPath == "" {
		return o.csv, nil
	}

	f, err := os.Create(o.csvPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create csv output")
	}

	o.csv = writer.New(f)
	o.csvFile = f

	return o.csv, nil
}

//
// close flushes and closes the CSV output if a command opened one. Every failure is reported.
//
func (o *app) close() error {
	var result *multierror.Error

	if o.csv != nil {
		if err := o.csv.Flush(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if o.csvFile != nil {
		if err := o.csvFile.Close(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "failed to close csv output"))
		}

		o.csvFile = nil
	}

	return result.ErrorOrNil()
}

//
// run dispatches args[0] to the matching command.
//
func (o *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("no command given")
	}

	name, args := args[0], args[1:]

	switch name {
	case "symbols":
		return o.withArgs(name, "", args, 0, 0, func() error { return o.symbols(ctx) })
	case "trades":
		return o.withArgs(name, "SYMBOL [COUNT]", args, 1, 2, func() error { return o.trades(ctx, args) })
	case "candles":
		return o.withArgs(name, "SYMBOL [TIMEFRAME] [COUNT]", args, 1, 3, func() error { return o.candles(ctx, args) })
	case "depth":
		return o.withArgs(name, "SYMBOL [DEPTH]", args, 1, 2, func() error { return o.depth(ctx, args) })
	case "balance":
		return o.withArgs(name, "", args, 0, 0, func() error { return o.balance(ctx) })
	case "order":
		return o.withArgs(name, "ID", args, 1, 1, func() error { return o.order(ctx, args) })
	case "orders":
		return o.withArgs(name, "SYMBOL", args, 1, 1, func() error { return o.orders(ctx, args) })
	case "mytrades":
		return o.withArgs(name, "COUNT [SYMBOL]", args, 1, 2, func() error { return o.myTrades(ctx, args) })
	case "buy":
		return o.withArgs(name, "SYMBOL PRICE VOLUME [COMMENT]", args, 3, 4, func() error { return o.addOrder(ctx, exchange.Buy, args) })
	case "sell":
		return o.withArgs(name, "SYMBOL PRICE VOLUME [COMMENT]", args, 3, 4, func() error { return o.addOrder(ctx, exchange.Sell, args) })
	case "cancel":
		return o.withArgs(name, "ID", args, 1, 1, func() error { return o.cancel(ctx, args) })
	}

	return usagef("unknown command %q", name)
}

func (o *app) withArgs(name string, usage string, args []string, least int, most int, fn func() error) error {
	if len(args) < least || len(args) > most {
		return usagef("usage: %s %s", name, usage)
	}

	return fn()
}

func (o *app) symbols(ctx context.Context) error {
	symbols, err := o.client.Symbols(ctx)
	if err != nil {
		return err
	}

	for _, s := range symbols {
		fmt.Fprintf(o.out, "%s %s step %s\n", o.au.Bold(s.Name), s.Currency, codec.EncodeDecimal(s.PriceStep))
	}

	return nil
}

func (o *app) trades(ctx context.Context, args []string) error {
	req := exchange.TradesRequest{Symbol: args[0]}

	if len(args) > 1 {
		count, err := parseCount("COUNT", args[1])
		if err != nil {
			return err
		}
		req.Count = count
	}

	trades, err := o.client.Trades(ctx, req)
	if err != nil {
		return err
	}

	csv, err := o.csvOutput()
	if err != nil {
		return err
	}

	if csv != nil {
		return csv.WriteTrades(trades)
	}

	for _, t := range trades {
		fmt.Fprintf(o.out, "%s #%d %s %s @ %s\n",
			formatTime(t.Time), t.ID, o.side(t.OrderType), codec.EncodeDecimal(t.Volume), codec.EncodeDecimal(t.Price))
	}

	return nil
}

func (o *app) candles(ctx context.Context, args []string) error {
	req := exchange.CandlesRequest{Symbol: args[0]}

	if len(args) > 1 {
		timeframe, err := exchange.ParseInterval(args[1])
		if err != nil {
			return usagef("%s", err)
		}
		req.Timeframe = timeframe
	}

	if len(args) > 2 {
		count, err := parseCount("COUNT", args[2])
		if err != nil {
			return err
		}
		req.Count = count
	}

	candles, err := o.client.Candles(ctx, req)
	if err != nil {
		return err
	}

	csv, err := o.csvOutput()
	if err != nil {
		return err
	}

	if csv != nil {
		return csv.WriteCandles(candles)
	}

	for _, c := range candles {
		fmt.Fprintf(o.out, "%s O %s H %s L %s C %s V %s\n",
			formatTime(c.Time),
			codec.EncodeDecimal(c.Open), codec.EncodeDecimal(c.High), codec.EncodeDecimal(c.Low),
			o.au.Bold(codec.EncodeDecimal(c.Close)), codec.EncodeDecimal(c.Volume))
	}

	return nil
}

func (o *app) depth(ctx context.Context, args []string) error {
	req := exchange.DepthRequest{Symbol: args[0]}

	if len(args) > 1 {
		depth, err := parseCount("DEPTH", args[1])
		if err != nil {
			return err
		}
		req.Depth = depth
	}

	depth, err := o.client.Depth(ctx, req)
	if err != nil {
		return err
	}

	//
	// Print the asks from the top down so that the best prices of both sides meet in the middle.
	//
	for i := len(depth.Asks) - 1; i >= 0; i-- {
		level := depth.Asks[i]
		fmt.Fprintf(o.out, "%s %s\n", o.au.Red(codec.EncodeDecimal(level.Price)), codec.EncodeDecimal(level.Volume))
	}

	if spread, ok := depth.Spread(); ok {
		fmt.Fprintf(o.out, "-- spread %s --\n", codec.EncodeDecimal(spread))
	} else {
		fmt.Fprintln(o.out, "-- one-sided book --")
	}

	for _, level := range depth.Bids {
		fmt.Fprintf(o.out, "%s %s\n", o.au.Green(codec.EncodeDecimal(level.Price)), codec.EncodeDecimal(level.Volume))
	}

	return nil
}

func (o *app) balance(ctx context.Context) error {
	balance, err := o.client.Balance(ctx)
	if err != nil {
		return err
	}

	for _, a := range balance.Accounts {
		fmt.Fprintf(o.out, "%s %s (reserved %s, available %s)\n",
			o.au.Bold(a.Currency), codec.EncodeDecimal(a.Amount), codec.EncodeDecimal(a.Reserved),
			o.au.Green(codec.EncodeDecimal(a.Available())))
	}

	return nil
}

func (o *app) order(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	order, err := o.client.GetOrder(ctx, id)
	if err != nil {
		return err
	}

	o.printOrder(order)

	return nil
}

func (o *app) orders(ctx context.Context, args []string) error {
	orders, err := o.client.ActiveOrders(ctx, args[0])
	if err != nil {
		return err
	}

	for i := range orders {
		o.printOrder(&orders[i])
	}

	return nil
}

func (o *app) myTrades(ctx context.Context, args []string) error {
	count, err := parseCount("COUNT", args[0])
	if err != nil {
		return err
	}

	req := exchange.MyTradesRequest{Count: count}
	if len(args) > 1 {
		req.Symbol = args[1]
	}

	trades, err := o.client.MyTrades(ctx, req)
	if err != nil {
		return err
	}

	for _, t := range trades {
		fmt.Fprintf(o.out, "%s #%d %s %s %s @ %s (order %d)\n",
			formatTime(t.Time), t.ID, t.Ticker, o.side(t.OrderType),
			codec.EncodeDecimal(t.Volume), codec.EncodeDecimal(t.Price), t.OrderID)
	}

	return nil
}

func (o *app) addOrder(ctx context.Context, direction exchange.OrderType, args []string) error {
	price, err := codec.DecodeDecimal(args[1])
	if err != nil {
		return usagef("invalid PRICE %q", args[1])
	}

	volume, err := codec.DecodeDecimal(args[2])
	if err != nil {
		return usagef("invalid VOLUME %q", args[2])
	}

	req := exchange.AddOrderRequest{
		Symbol:    args[0],
		Price:     price,
		Volume:    volume,
		Direction: direction,
	}
	if len(args) > 3 {
		req.Comment = args[3]
	}

	order, err := o.client.AddOrder(ctx, req)
	if err != nil {
		return err
	}

	o.printOrder(order)

	//
	// A rejected order is a successful call as far as the API is concerned, but not for whoever
	// ran the command.
	//
	if order.IsRejected() {
		return errors.Errorf("order %d was rejected: %s", order.ID, order.Status)
	}

	return nil
}

func (o *app) cancel(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	order, err := o.client.CancelOrder(ctx, id)
	if err != nil {
		return err
	}

	o.printOrder(order)

	return nil
}

func (o *app) printOrder(order *exchange.Order) {
	var status aurora.Value

	switch {
	case order.IsRejected():
		status = o.au.Red(order.Status)
	case order.IsActive():
		status = o.au.Green(order.Status)
	default:
		status = o.au.Yellow(order.Status)
	}

	fmt.Fprintf(o.out, "#%d %s %s %s/%s @ %s %s",
		order.ID, order.Symbol, o.side(order.Direction),
		codec.EncodeDecimal(order.FilledVolume()), codec.EncodeDecimal(order.InitialVolume),
		codec.EncodeDecimal(order.Price), status)

	if order.Comment != "" {
		fmt.Fprintf(o.out, " %q", order.Comment)
	}

	fmt.Fprintln(o.out)
}

func (o *app) side(side exchange.OrderType) aurora.Value {
	switch side {
	case exchange.Buy:
		return o.au.Bold(o.au.Green("BUY"))
	case exchange.Sell:
		return o.au.Bold(o.au.Red("SELL"))
	}

	return o.au.Bold("?")
}

func parseCount(name string, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, usagef("invalid %s %q", name, s)
	}

	return n, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, usagef("invalid ID %q", s)
	}

	return id, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
