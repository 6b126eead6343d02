package exchange

import (
	"time"

	"github.com/shopspring/decimal"
)

// Symbol describes an instrument traded on the exchange.
type Symbol struct {
	Name      string          `json:"Name"`
	Currency  string          `json:"Currency"`
	PriceStep decimal.Decimal `json:"PriceStep"`
}

// Trade is a single public deal.
type Trade struct {
	ID        int64           `json:"Id"`
	Ticker    string          `json:"Ticker"`
	Time      time.Time       `json:"Time"`
	OrderType OrderType       `json:"OrderType"`
	Price     decimal.Decimal `json:"Price"`
	Volume    decimal.Decimal `json:"Volume"`
}

// Value returns price times volume.
func (o Trade) Value() decimal.Decimal {
	return o.Price.Mul(o.Volume)
}

// MyTrade is one of the caller's own deals: a Trade plus the order it filled.
type MyTrade struct {
	Trade
	OrderID int64 `json:"OrderId"`
}

// Candle is an OHLCV snapshot of one timeframe.
type Candle struct {
	Symbol string          `json:"Symbol"`
	Time   time.Time       `json:"Time"`
	Open   decimal.Decimal `json:"Open"`
	High   decimal.Decimal `json:"High"`
	Low    decimal.Decimal `json:"Low"`
	Close  decimal.Decimal `json:"Close"`
	Volume decimal.Decimal `json:"Volume"`
}

// DepthLevel is one aggregated price level of the order book.
type DepthLevel struct {
	Price     decimal.Decimal `json:"Price"`
	Volume    decimal.Decimal `json:"Volume"`
	OrderType OrderType       `json:"OrderType"`
}

// Depth is an order book snapshot. Bids are best (highest) first, asks best (lowest) first.
type Depth struct {
	Symbol string       `json:"Symbol"`
	Bids   []DepthLevel `json:"Bids"`
	Asks   []DepthLevel `json:"Asks"`
}

// BestBid returns the top bid level, or false if there are no bids.
func (o *Depth) BestBid() (DepthLevel, bool) {
	if len(o.Bids) == 0 {
		return DepthLevel{}, false
	}

	return o.Bids[0], true
}

// BestAsk returns the top ask level, or false if there are no asks.
func (o *Depth) BestAsk() (DepthLevel, bool) {
	if len(o.Asks) == 0 {
		return DepthLevel{}, false
	}

	return o.Asks[0], true
}

// Spread returns best ask minus best bid, or false if either side is empty.
func (o *Depth) Spread() (decimal.Decimal, bool) {
	bid, ok := o.BestBid()
	if !ok {
		return decimal.Zero, false
	}

	ask, ok := o.BestAsk()
	if !ok {
		return decimal.Zero, false
	}

	return ask.Price.Sub(bid.Price), true
}

// Account is the holding of one currency.
type Account struct {
	Currency string          `json:"Currency"`
	Amount   decimal.Decimal `json:"Amount"`
	Reserved decimal.Decimal `json:"Reserved"`
}

// Available returns the part of the amount that is not reserved by active orders.
func (o Account) Available() decimal.Decimal {
	return o.Amount.Sub(o.Reserved)
}

// Balance lists the caller's accounts.
type Balance struct {
	Accounts []Account `json:"Accounts"`
}

// Account returns the account holding currency, or false if there is none.
func (o *Balance) Account(currency string) (Account, bool) {
	for _, a := range o.Accounts {
		if a.Currency == currency {
			return a, true
		}
	}

	return Account{}, false
}

// Order is one of the caller's orders as the exchange last saw it.
type Order struct {
	ID            int64           `json:"Id"`
	Symbol        string          `json:"Symbol"`
	AddTime       time.Time       `json:"AddTime"`
	ModifiedTime  time.Time       `json:"ModifiedTime"`
	Price         decimal.Decimal `json:"Price"`
	Volume        decimal.Decimal `json:"Volume"`
	InitialVolume decimal.Decimal `json:"InitialVolume"`
	Direction     OrderType       `json:"Direction"`
	Status        OrderStatus     `json:"Status"`
	Comment       string          `json:"Comment"`
}

// IsActive reports whether the order is still resting in the book.
func (o *Order) IsActive() bool {
	return o.Status == StatusActive
}

// IsRejected reports whether the exchange refused the order.
func (o *Order) IsRejected() bool {
	return o.Status.Rejected()
}

// FilledVolume returns how much of the initial volume has been executed.
func (o *Order) FilledVolume() decimal.Decimal {
	return o.InitialVolume.Sub(o.Volume)
}
