package exchange

import (
	"encoding/json"

	"dgtx/pkg/types"
)

// frame is the generic envelope of every structured inbound message.
type frame struct {
	Data   json.RawMessage `json:"data"`
	Ch     string          `json:"ch"`
	ID     int             `json:"id"`
	Status string          `json:"status"`
	Code   int             `json:"code"`
}

type indexData struct {
	SpotPx float64 `json:"spotPx"`
}

type klineData struct {
	ID       int64   `json:"id"`
	Open     float64 `json:"o"`
	High     float64 `json:"h"`
	Low      float64 `json:"l"`
	Close    float64 `json:"c"`
	Volume   float64 `json:"v"`
	Interval string  `json:"interval"`
}

type orderbookData struct {
	Bids [][2]float64 `json:"bids"`
	Asks [][2]float64 `json:"asks"`
}

type tradesData struct {
	Trades []tradeData `json:"trades"`
}

type tradeData struct {
	Ts   int64           `json:"ts"`
	Px   float64         `json:"px"`
	Qty  float64         `json:"qty"`
	Side types.OrderSide `json:"side"`
}

// traderSnapshot carries the account fields repeated on every trading push.
type traderSnapshot struct {
	TraderBalance float64 `json:"traderBalance"`
	Leverage      float64 `json:"leverage"`
	PnL           float64 `json:"pnl"`
	UPnL          float64 `json:"upnl"`
}

func (t traderSnapshot) account() types.TraderAccount {
	return types.TraderAccount{
		Balance:  t.TraderBalance,
		Leverage: t.Leverage,
		PnL:      t.PnL,
		UPnL:     t.UPnL,
	}
}

type orderStatusData struct {
	traderSnapshot

	OrderStatus types.OrderStatus `json:"orderStatus"`
	OrigClOrdID string            `json:"origClOrdId"`
	ClOrdID     string            `json:"clOrdId"`
	Symbol      string            `json:"symbol"`
	OrderSide   types.OrderSide   `json:"orderSide"`
	Px          float64           `json:"px"`
	PxValue     float64           `json:"pxValue"`
	Qty         float64           `json:"qty"`
	OrigQty     float64           `json:"origQty"`
	DroppedQty  float64           `json:"droppedQty"`
	TimeInForce types.OrderTIF    `json:"timeInForce"`
	Condition   types.Condition   `json:"condition"`
	ActionID    string            `json:"actionId"`
	ErrCode     int               `json:"errCode"`
	Contracts   []json.RawMessage `json:"contracts"`
}

type orderFilledData struct {
	OrigClOrdID string `json:"origClOrdId"`
}

type orderCancelledData struct {
	traderSnapshot

	Orders []cancelledOrder `json:"orders"`
}

type cancelledOrder struct {
	OrigClOrdID string          `json:"origClOrdId"`
	ClOrdID     string          `json:"clOrdId"`
	OrderSide   types.OrderSide `json:"orderSide"`
	Px          float64         `json:"px"`
	Qty         float64         `json:"qty"`
}

type traderStatusData struct {
	traderSnapshot

	Symbol            string            `json:"symbol"`
	PositionType      string            `json:"positionType"`
	PositionContracts float64           `json:"positionContracts"`
	ActiveOrders      []orderStatusData `json:"activeOrders"`
	ConditionalOrders []condOrderData   `json:"conditionalOrders"`
	Contracts         []contractData    `json:"contracts"`
}

type contractData struct {
	ContractID int64           `json:"contractId"`
	Px         float64         `json:"px"`
	Qty        float64         `json:"qty"`
	Side       types.OrderSide `json:"side"`
}

type condOrderStatusData struct {
	Status            types.OrderStatus `json:"status"`
	Symbol            string            `json:"symbol"`
	ErrCode           int               `json:"errCode"`
	ConditionalOrders []condOrderData   `json:"conditionalOrders"`
}

type condOrderData struct {
	ClOrdID     string          `json:"clOrdId"`
	ActionID    string          `json:"actionId"`
	Condition   types.Condition `json:"condition"`
	Side        types.OrderSide `json:"side"`
	Px          float64         `json:"px"`
	PxValue     float64         `json:"pxValue"`
	Qty         float64         `json:"qty"`
	OrigQty     float64         `json:"origQty"`
	TimeInForce types.OrderTIF  `json:"timeInForce"`
	OrdType     types.OrderType `json:"ordType"`
}
