package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/lukehollenback/clientapi/exchange"
	"github.com/lukehollenback/clientapi/writer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// fakeClient records the requests it gets and answers with canned results.
//
type fakeClient struct {
	trades   exchange.TradesRequest
	candles  exchange.CandlesRequest
	depth    exchange.DepthRequest
	myTrades exchange.MyTradesRequest
	added    exchange.AddOrderRequest
	orderID  int64
	symbol   string

	order *exchange.Order
	book  *exchange.Depth
	err   error
}

func (o *fakeClient) Symbols(ctx context.Context) ([]exchange.Symbol, error) {
	return []exchange.Symbol{{Name: "BTC_USD", Currency: "USD", PriceStep: decimal.RequireFromString("0.01")}}, o.err
}

func (o *fakeClient) Trades(ctx context.Context, req exchange.TradesRequest) ([]exchange.Trade, error) {
	o.trades = req

	return []exchange.Trade{{
		ID:        7,
		Ticker:    req.Symbol,
		Time:      time.Unix(1700000000, 0),
		OrderType: exchange.Sell,
		Price:     decimal.RequireFromString("100.5"),
		Volume:    decimal.NewFromInt(2),
	}}, o.err
}

func (o *fakeClient) Candles(ctx context.Context, req exchange.CandlesRequest) ([]exchange.Candle, error) {
	o.candles = req

	return nil, o.err
}

func (o *fakeClient) Depth(ctx context.Context, req exchange.DepthRequest) (*exchange.Depth, error) {
	o.depth = req

	return o.book, o.err
}

func (o *fakeClient) Balance(ctx context.Context) (*exchange.Balance, error) {
	return &exchange.Balance{Accounts: []exchange.Account{{
		Currency: "USD",
		Amount:   decimal.NewFromInt(10),
		Reserved: decimal.NewFromInt(4),
	}}}, o.err
}

func (o *fakeClient) GetOrder(ctx context.Context, id int64) (*exchange.Order, error) {
	o.orderID = id

	return o.order, o.err
}

func (o *fakeClient) ActiveOrders(ctx context.Context, symbol string) ([]exchange.Order, error) {
	o.symbol = symbol

	return []exchange.Order{*o.order}, o.err
}

func (o *fakeClient) MyTrades(ctx context.Context, req exchange.MyTradesRequest) ([]exchange.MyTrade, error) {
	o.myTrades = req

	return nil, o.err
}

func (o *fakeClient) AddOrder(ctx context.Context, req exchange.AddOrderRequest) (*exchange.Order, error) {
	o.added = req

	return o.order, o.err
}

func (o *fakeClient) CancelOrder(ctx context.Context, id int64) (*exchange.Order, error) {
	o.orderID = id

	return o.order, o.err
}

func newTestApp(client exchange.Client) (*app, *bytes.Buffer) {
	var out bytes.Buffer

	return &app{client: client, out: &out, au: aurora.NewAurora(false)}, &out
}

func testOrder(status exchange.OrderStatus) *exchange.Order {
	return &exchange.Order{
		ID:            42,
		Symbol:        "BTC_USD",
		Price:         decimal.RequireFromString("100.5"),
		Volume:        decimal.NewFromInt(1),
		InitialVolume: decimal.NewFromInt(3),
		Direction:     exchange.Buy,
		Status:        status,
	}
}

func TestSymbolsCommand(t *testing.T) {
	a, out := newTestApp(&fakeClient{})

	require.NoError(t, a.run(context.Background(), []string{"symbols"}))
	assert.Equal(t, "BTC_USD USD step 0.01\n", out.String())
}

func TestTradesCommand(t *testing.T) {
	client := &fakeClient{}
	a, out := newTestApp(client)

	require.NoError(t, a.run(context.Background(), []string{"trades", "BTC_USD", "25"}))

	assert.Equal(t, exchange.TradesRequest{Symbol: "BTC_USD", Count: 25}, client.trades)
	assert.Equal(t, "2023-11-14T22:13:20Z #7 SELL 2 @ 100.5\n", out.String())
}

func TestTradesCommandToCSV(t *testing.T) {
	var buf bytes.Buffer

	a, out := newTestApp(&fakeClient{})
	a.csv = writer.New(&buf)

	require.NoError(t, a.run(context.Background(), []string{"trades", "BTC_USD"}))
	require.NoError(t, a.csv.Flush())

	assert.Empty(t, out.String())
	assert.Equal(t, "Id,Symbol,Time,OrderType,Price,Volume\n7,BTC_USD,1700000000,Sell,100.5,2\n", buf.String())
}

type failingCloser struct{}

func (failingCloser) Close() error {
	return errors.New("disk full")
}

func TestCSVFileOnlyCreatedWhenWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	a, out := newTestApp(&fakeClient{})
	a.csvPath = path

	require.NoError(t, a.run(context.Background(), []string{"balance"}))
	require.NoError(t, a.close())

	assert.NotEmpty(t, out.String())
	assert.NoFileExists(t, path)

	require.NoError(t, a.run(context.Background(), []string{"candles", "BTC_USD"}))
	require.NoError(t, a.close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Symbol,Time,Open,High,Low,Close,Volume\n", string(contents))
}

func TestCloseReportsFailedClose(t *testing.T) {
	a, _ := newTestApp(&fakeClient{})
	a.csv = writer.New(&bytes.Buffer{})
	a.csvFile = failingCloser{}

	err := a.close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	assert.NoError(t, a.close(), "the file is only closed once")
}

func TestCandlesCommandParsesTimeframe(t *testing.T) {
	client := &fakeClient{}
	a, _ := newTestApp(client)

	require.NoError(t, a.run(context.Background(), []string{"candles", "BTC_USD", "5m", "10"}))
	assert.Equal(t, exchange.CandlesRequest{Symbol: "BTC_USD", Timeframe: exchange.FiveMinute, Count: 10}, client.candles)

	err := a.run(context.Background(), []string{"candles", "BTC_USD", "often"})
	var usage *usageError
	assert.True(t, errors.As(err, &usage))
}

func TestDepthCommand(t *testing.T) {
	client := &fakeClient{book: &exchange.Depth{
		Symbol: "BTC_USD",
		Bids:   []exchange.DepthLevel{{Price: decimal.NewFromInt(99), Volume: decimal.NewFromInt(1)}},
		Asks: []exchange.DepthLevel{
			{Price: decimal.NewFromInt(101), Volume: decimal.NewFromInt(2)},
			{Price: decimal.NewFromInt(102), Volume: decimal.NewFromInt(3)},
		},
	}}
	a, out := newTestApp(client)

	require.NoError(t, a.run(context.Background(), []string{"depth", "BTC_USD"}))

	assert.Equal(t, exchange.DepthRequest{Symbol: "BTC_USD"}, client.depth)
	assert.Equal(t, "102 3\n101 2\n-- spread 2 --\n99 1\n", out.String())
}

func TestBalanceCommand(t *testing.T) {
	a, out := newTestApp(&fakeClient{})

	require.NoError(t, a.run(context.Background(), []string{"balance"}))
	assert.Equal(t, "USD 10 (reserved 4, available 6)\n", out.String())
}

func TestOrderCommands(t *testing.T) {
	client := &fakeClient{order: testOrder(exchange.StatusActive)}
	a, out := newTestApp(client)

	require.NoError(t, a.run(context.Background(), []string{"order", "42"}))
	assert.Equal(t, int64(42), client.orderID)
	assert.Equal(t, "#42 BTC_USD BUY 2/3 @ 100.5 Active\n", out.String())

	out.Reset()
	require.NoError(t, a.run(context.Background(), []string{"orders", "ETH_USD"}))
	assert.Equal(t, "ETH_USD", client.symbol)

	require.NoError(t, a.run(context.Background(), []string{"cancel", "43"}))
	assert.Equal(t, int64(43), client.orderID)
}

func TestMyTradesCommand(t *testing.T) {
	client := &fakeClient{}
	a, _ := newTestApp(client)

	require.NoError(t, a.run(context.Background(), []string{"mytrades", "5", "BTC_USD"}))
	assert.Equal(t, exchange.MyTradesRequest{Count: 5, Symbol: "BTC_USD"}, client.myTrades)
}

func TestSellCommand(t *testing.T) {
	client := &fakeClient{order: testOrder(exchange.StatusActive)}
	a, _ := newTestApp(client)

	require.NoError(t, a.run(context.Background(), []string{"sell", "BTC_USD", "100.5", "0.25", "note"}))

	assert.Equal(t, "BTC_USD", client.added.Symbol)
	assert.Equal(t, exchange.Sell, client.added.Direction)
	assert.Equal(t, "100.5", client.added.Price.String())
	assert.Equal(t, "0.25", client.added.Volume.String())
	assert.Equal(t, "note", client.added.Comment)
}

func TestRejectedOrderFailsCommand(t *testing.T) {
	a, out := newTestApp(&fakeClient{order: testOrder(exchange.StatusNoMoneyReject)})

	err := a.run(context.Background(), []string{"buy", "BTC_USD", "100.5", "3"})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "NoMoneyReject")
	assert.Contains(t, out.String(), "NoMoneyReject")
}

func TestClientErrorsPassThrough(t *testing.T) {
	cause := exchange.NewHTTPError("balance", 401, nil)
	a, _ := newTestApp(&fakeClient{err: cause})

	err := a.run(context.Background(), []string{"balance"})
	assert.True(t, exchange.IsAuthenticationRejected(err))
}

func TestUsageErrors(t *testing.T) {
	a, _ := newTestApp(&fakeClient{})

	for _, args := range [][]string{
		{},
		{"nope"},
		{"symbols", "extra"},
		{"trades"},
		{"trades", "BTC_USD", "-1"},
		{"order", "abc"},
		{"buy", "BTC_USD", "cheap", "1"},
		{"mytrades"},
	} {
		err := a.run(context.Background(), args)

		var usage *usageError
		assert.True(t, errors.As(err, &usage), "%v: %v", args, err)
	}
}
