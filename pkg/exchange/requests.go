package exchange

import (
	"encoding/json"

	"dgtx/pkg/types"
)

// Request-kind tags of the outbound {id, method, params} envelope. The
// exchange treats them as method constants, not correlation ids.
const (
	reqAuth            = 1
	reqSubscribe       = 2
	reqPlaceOrder      = 3
	reqPlaceCondOrder  = 4
	reqCancelCondOrder = 5
	reqCancelOrder     = 6
	reqGetTraderStatus = 9
	reqChangeLeverage  = 10
	reqCancelAllOrders = 11
)

type request struct {
	ID     int    `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params"`
}

func marshalRequest(id int, method string, params any) ([]byte, error) {
	return json.Marshal(request{ID: id, Method: method, Params: params})
}

type authParams struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type traderStatusParams struct {
	Symbol string `json:"symbol"`
}

type changeLeverageParams struct {
	Leverage int    `json:"leverage"`
	Symbol   string `json:"symbol"`
}

type cancelAllOrdersParams struct {
	Symbol string          `json:"symbol"`
	Side   types.OrderSide `json:"side,omitempty"`
	Px     float64         `json:"px,omitempty"`
}

type cancelAllCondParams struct {
	AllForTrader bool   `json:"allForTrader"`
	Symbol       string `json:"symbol"`
}
