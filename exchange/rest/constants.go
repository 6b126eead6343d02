package rest

import "time"

const (
	SignHeader      = "sign"
	NumberParam     = "number"
	KeyIDParam      = "keyid"
	FormContentType = "application/x-www-form-urlencoded; charset=utf-8"

	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "clientapi-go"
)

const (
	symbolsCommand     = "symbols"
	tradesCommand      = "trades"
	candlesCommand     = "candles"
	depthCommand       = "depth"
	balanceCommand     = "balance"
	getOrderCommand    = "getorder"
	myOrdersCommand    = "myorders"
	myTradesCommand    = "mytrades"
	addOrderCommand    = "addorder"
	cancelOrderCommand = "cancelorder"
)
