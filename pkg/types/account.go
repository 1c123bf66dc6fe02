package types

// TraderAccount is the exchange-pushed account snapshot. It is replaced
// wholesale on every orderStatus / orderCancelled / traderStatus push.
type TraderAccount struct {
	Balance  float64
	Leverage float64
	PnL      float64
	UPnL     float64
}

// Position is a per-contract holding record rebuilt from traderStatus pushes.
type Position struct {
	Symbol     string
	ContractID int64
	EntryPx    float64
	Qty        float64
	Side       OrderSide
}
