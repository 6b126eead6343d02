package exchange

import (
	"fmt"

	"github.com/lukehollenback/clientapi/codec"
)

//
// OrderStatus is an enum that represents the state of an order. The constants carry the exchange's
// signed numeric codes; on the wire the status is sent by name. Rejection reasons only ever arrive
// through this field of an otherwise successful response.
//
type OrderStatus int

const (
	StatusUnknown            OrderStatus = 0
	StatusActive             OrderStatus = 1
	StatusDone               OrderStatus = 2
	StatusCanceled           OrderStatus = 3
	StatusCrossDealReject    OrderStatus = -1
	StatusNoMoneyReject      OrderStatus = -2
	StatusPaceReject         OrderStatus = -3
	StatusNotFoundReject     OrderStatus = -4
	StatusInvalidPriceReject OrderStatus = -5
)

var orderStatuses = codec.NewEnumTable("OrderStatus", map[OrderStatus]string{
	StatusUnknown:            "Unknown",
	StatusActive:             "Active",
	StatusDone:               "Done",
	StatusCanceled:           "Canceled",
	StatusCrossDealReject:    "CrossDealReject",
	StatusNoMoneyReject:      "NoMoneyReject",
	StatusPaceReject:         "PaceReject",
	StatusNotFoundReject:     "NotFoundReject",
	StatusInvalidPriceReject: "InvalidPriceReject",
})

func (o OrderStatus) String() string {
	if name, ok := orderStatuses.Name(o); ok {
		return name
	}

	return fmt.Sprintf("OrderStatus(%d)", int(o))
}

// Code returns the signed numeric code of the status.
func (o OrderStatus) Code() int {
	return int(o)
}

// Rejected reports whether the status is one of the reject codes.
func (o OrderStatus) Rejected() bool {
	return o < 0
}

//
// ParseOrderStatus resolves a wire token (a name, or a declared numeric code). Unknown tokens yield
// a *codec.UnknownEnumValueError rather than a silent default.
//
func ParseOrderStatus(token string) (OrderStatus, error) {
	return orderStatuses.Parse(token)
}

// OrderStatusFromCode resolves a numeric code from the status code table.
func OrderStatusFromCode(code int) (OrderStatus, error) {
	return orderStatuses.FromCode(code)
}
