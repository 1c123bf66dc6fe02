package types

type OrderSide string

const (
	OrderSideBuy  = OrderSide("BUY")
	OrderSideSell = OrderSide("SELL")
)

type OrderTIF string // TimeInForce

const (
	OrderTIFGTC = OrderTIF("GTC") // Good 'Til Canceled
	OrderTIFIOC = OrderTIF("IOC") // Immediate or Cancel
	OrderTIFFOK = OrderTIF("FOK") // Fill or Kill
)

type OrderType string

const (
	OrderLimit  = OrderType("LIMIT")
	OrderMarket = OrderType("MARKET")
)

type OrderStatus string

const (
	OrderStatusAccepted  = OrderStatus("ACCEPTED")
	OrderStatusRejected  = OrderStatus("REJECTED")
	OrderStatusFilled    = OrderStatus("FILLED")
	OrderStatusCancelled = OrderStatus("CANCELLED")
	OrderStatusTriggered = OrderStatus("TRIGGERED")
)

// Condition is the trigger direction of a conditional order: the order is
// submitted to the matching engine once price crosses the trigger level from
// the given side.
type Condition string

const (
	ConditionLessEqual    = Condition("LESS_EQUAL")
	ConditionGreaterEqual = Condition("GREATER_EQUAL")
)

func (c Condition) Valid() bool {
	return c == ConditionLessEqual || c == ConditionGreaterEqual
}
