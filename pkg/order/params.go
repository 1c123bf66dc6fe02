package order

import "dgtx/pkg/types"

// Wire params for the {id, method, params} request envelope. The envelope
// itself is owned by the exchange client; the value objects here only build
// the params fragment.

type PlaceOrderParams struct {
	ClOrdID     string          `json:"clOrdId"`
	OrdType     types.OrderType `json:"ordType"`
	Px          float64         `json:"px,omitempty"`
	Qty         float64         `json:"qty"`
	Side        types.OrderSide `json:"side"`
	Symbol      string          `json:"symbol"`
	TimeInForce types.OrderTIF  `json:"timeInForce"`
}

type PlaceCondOrderParams struct {
	ActionID        string          `json:"actionId,omitempty"`
	ClOrdID         string          `json:"clOrdId,omitempty"`
	Condition       types.Condition `json:"condition"`
	MayIncrPosition bool            `json:"mayIncrPosition"`
	OrdType         types.OrderType `json:"ordType"`
	Px              float64         `json:"px"`
	PxType          string          `json:"pxType"`
	PxValue         float64         `json:"pxValue"`
	Qty             float64         `json:"qty"`
	Side            types.OrderSide `json:"side"`
	Symbol          string          `json:"symbol"`
	TimeInForce     types.OrderTIF  `json:"timeInForce"`
}

type CancelOrderParams struct {
	ClOrdID string `json:"clOrdId"`
	Symbol  string `json:"symbol"`
}

type CancelCondOrderParams struct {
	ActionID     string `json:"actionId,omitempty"`
	AllForTrader bool   `json:"allForTrader"`
	Symbol       string `json:"symbol"`
}
