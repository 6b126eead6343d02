package exchange

import (
	"github.com/lukehollenback/clientapi/codec"
)

//
// OrderType is an enum that represents the side of an order or trade. It travels on the wire by
// name ("Buy", "Sell"). The zero value means "not set" and is never sent.
//
type OrderType int

const (
	Buy  OrderType = 1
	Sell OrderType = -1
)

var orderTypes = codec.NewEnumTable("OrderType", map[OrderType]string{
	Buy:  "Buy",
	Sell: "Sell",
})

// String returns the wire name, or "" for a value that is not declared.
func (o OrderType) String() string {
	name, _ := orderTypes.Name(o)

	return name
}

// Valid reports whether o is a declared side.
func (o OrderType) Valid() bool {
	_, ok := orderTypes.Name(o)

	return ok
}

//
// ParseOrderType resolves a wire token. Unknown tokens yield a *codec.UnknownEnumValueError.
//
func ParseOrderType(token string) (OrderType, error) {
	return orderTypes.Parse(token)
}
