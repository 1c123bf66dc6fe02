package order

import (
	"fmt"

	"dgtx/pkg/types"
)

// PxTypeSpot marks a conditional order triggered off the spot index price.
const PxTypeSpot = "SPOT_PRICE"

// Offset shifts a conditional order's execution and trigger prices by whole
// ticks relative to its base price. Ticks may be negative.
type Offset struct {
	Ticks   float64
	Trigger float64
}

// CondOrderInput are the caller-supplied parameters of a conditional order.
// Price is the base price; when zero the current futures price is used.
// PxValue, when set, is an absolute trigger value overriding any offset.
type CondOrderInput struct {
	Condition       types.Condition
	Side            types.OrderSide
	Qty             float64
	Price           float64
	PxValue         float64
	Offset          *Offset
	Type            types.OrderType
	TIF             types.OrderTIF
	MayIncrPosition bool
	ActionID        string
	ClOrdID         string
}

// ConditionalOrder is an order submitted to the matching engine only once its
// trigger condition on price is met. Identity is the client order id or the
// exchange-assigned action id.
type ConditionalOrder struct {
	ClOrdID         string
	ActionID        string
	Symbol          string
	Side            types.OrderSide
	Qty             float64
	TIF             types.OrderTIF
	Type            types.OrderType
	Condition       types.Condition
	MayIncrPosition bool

	price        float64
	pxValue      float64
	offset       *Offset
	futuresPrice float64
	tickSize     float64
}

// NewConditional validates the trigger condition and builds the value object.
// Price derivation errors surface later, from Px and TriggerPrice.
func NewConditional(in CondOrderInput, symbol string, futuresPrice float64, tickSize float64) (*ConditionalOrder, error) {
	if !in.Condition.Valid() {
		return nil, fmt.Errorf("condition must be %v or %v, got %q", types.ConditionLessEqual, types.ConditionGreaterEqual, in.Condition)
	}
	qty := in.Qty
	if qty < 1 {
		qty = 1
	}
	tif := in.TIF
	if tif == "" {
		tif = types.OrderTIFGTC
	}
	ordType := in.Type
	if ordType == "" {
		ordType = types.OrderLimit
	}
	if tickSize <= 0 {
		tickSize = 1
	}
	return &ConditionalOrder{
		ClOrdID:         in.ClOrdID,
		ActionID:        in.ActionID,
		Symbol:          symbol,
		Side:            in.Side,
		Qty:             qty,
		TIF:             tif,
		Type:            ordType,
		Condition:       in.Condition,
		MayIncrPosition: in.MayIncrPosition,
		price:           in.Price,
		pxValue:         in.PxValue,
		offset:          in.Offset,
		futuresPrice:    futuresPrice,
		tickSize:        tickSize,
	}, nil
}

// Px resolves the execution price of the order once triggered.
func (c *ConditionalOrder) Px() (float64, error) {
	base := c.price
	if base == 0 {
		base = c.futuresPrice
	}
	if base == 0 {
		return 0, fmt.Errorf("conditional order price must be set")
	}
	if c.offset == nil && base == c.futuresPrice {
		return 0, fmt.Errorf("conditional order would trigger immediately: price %v equals the current futures price and no offset was given", base)
	}
	if c.offset != nil && c.offset.Ticks != 0 {
		return base + c.offset.Ticks*c.tickSize, nil
	}
	return base, nil
}

// TriggerPrice resolves the price level that arms the order.
func (c *ConditionalOrder) TriggerPrice() (float64, error) {
	if c.pxValue != 0 {
		return c.pxValue, nil
	}
	px, err := c.Px()
	if err != nil {
		return 0, err
	}
	if c.offset != nil && c.offset.Trigger > 0 {
		return px - c.tickSize*c.offset.Trigger, nil
	}
	if c.offset != nil && c.offset.Trigger < 0 {
		// offset is negative, so this subtracts ticks below px
		return px + c.tickSize*c.offset.Trigger, nil
	}
	return px, nil
}

// Is reports whether the order matches the given client order id or action id.
func (c *ConditionalOrder) Is(id string) bool {
	if id == "" {
		return false
	}
	return c.ClOrdID == id || c.ActionID == id
}

// PlaceParams builds the outbound params to submit this conditional order.
func (c *ConditionalOrder) PlaceParams() (PlaceCondOrderParams, error) {
	px, err := c.Px()
	if err != nil {
		return PlaceCondOrderParams{}, err
	}
	trigger, err := c.TriggerPrice()
	if err != nil {
		return PlaceCondOrderParams{}, err
	}
	return PlaceCondOrderParams{
		ActionID:        c.ActionID,
		ClOrdID:         c.ClOrdID,
		Condition:       c.Condition,
		MayIncrPosition: c.MayIncrPosition,
		OrdType:         c.Type,
		Px:              px,
		PxType:          PxTypeSpot,
		PxValue:         trigger,
		Qty:             c.Qty,
		Side:            c.Side,
		Symbol:          c.Symbol,
		TimeInForce:     c.TIF,
	}, nil
}

// CancelParams builds the outbound params to cancel this conditional order.
func (c *ConditionalOrder) CancelParams() CancelCondOrderParams {
	return CancelCondOrderParams{
		ActionID:     c.ActionID,
		AllForTrader: false,
		Symbol:       c.Symbol,
	}
}
