package exchange

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/lukehollenback/clientapi/codec"
)

//
// NewWireAPI returns the JSON configuration used for every payload of the API: decimals as
// decimal-literal strings, times as integer Unix seconds, and OrderType/OrderStatus by name. An
// unset OrderType is written as null; an undeclared status cannot be encoded at all.
//
func NewWireAPI() jsoniter.API {
	registry := codec.NewRegistry()

	codec.Register(registry, codec.Quoted, codec.EncodeDecimal, codec.DecodeDecimal)
	codec.Register(registry, codec.Bare, codec.EncodeTime, codec.DecodeTime)
	codec.RegisterEnum(registry, orderTypes)
	codec.RegisterEnum(registry, orderStatuses)

	return codec.NewAPI(registry)
}
