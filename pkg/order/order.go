package order

import (
	"encoding/json"

	"dgtx/pkg/types"
)

// Order is the local mirror of one exchange-side order. Identity is the
// client order id; subsequent status pushes referencing the same id mutate
// the order in place.
type Order struct {
	ID           string
	Symbol       string
	Side         types.OrderSide
	Price        float64 // 0 means market order
	TriggerPrice float64
	Type         types.OrderType
	Status       types.OrderStatus
	TIF          types.OrderTIF
	Qty          float64 // original quantity
	FilledQty    float64
	Condition    types.Condition
	ActionID     string
	Contracts    []json.RawMessage
}

// Is reports whether the order matches the given client order id.
func (o *Order) Is(id string) bool {
	return o.ID == id
}

// IsConditional reports whether the order carries a trigger price.
func (o *Order) IsConditional() bool {
	return o.TriggerPrice > 0
}

// Update applies an orderStatus push for this order. qty is the quantity
// traded by the push, droppedQty the quantity removed from the book.
// Returns true once the order is fully filled.
func (o *Order) Update(qty float64, droppedQty float64) bool {
	if droppedQty > 0 {
		o.Qty -= droppedQty
		return false
	}
	if droppedQty == 0 && qty == 0 {
		o.Status = types.OrderStatusFilled
		return true
	}
	if qty > 0 {
		o.FilledQty += qty
	}
	return false
}

// PlaceParams builds the outbound params to (re)submit this order.
func (o *Order) PlaceParams(increase bool) any {
	if o.IsConditional() {
		return PlaceCondOrderParams{
			ActionID:        o.ActionID,
			ClOrdID:         o.ID,
			Condition:       o.Condition,
			MayIncrPosition: increase,
			OrdType:         o.Type,
			Px:              o.Price,
			PxType:          PxTypeSpot,
			PxValue:         o.TriggerPrice,
			Qty:             o.Qty,
			Side:            o.Side,
			Symbol:          o.Symbol,
			TimeInForce:     o.TIF,
		}
	}
	return PlaceOrderParams{
		ClOrdID:     o.ID,
		OrdType:     o.Type,
		Px:          o.Price,
		Qty:         o.Qty,
		Side:        o.Side,
		Symbol:      o.Symbol,
		TimeInForce: o.TIF,
	}
}

// CancelParams builds the outbound params to cancel this order.
func (o *Order) CancelParams() any {
	if o.IsConditional() {
		return CancelCondOrderParams{
			ActionID:     o.ActionID,
			AllForTrader: false,
			Symbol:       o.Symbol,
		}
	}
	return CancelOrderParams{
		ClOrdID: o.ID,
		Symbol:  o.Symbol,
	}
}
