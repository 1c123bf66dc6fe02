package exchange

import (
	"encoding/json"

	"dgtx/pkg/market"
	"dgtx/pkg/order"
	"dgtx/pkg/types"
)

func parseFrame(raw []byte) (frame, error) {
	var f frame
	err := json.Unmarshal(raw, &f)
	return f, err
}

func parseKLineEvent(d klineData) types.KLineEvent {
	return types.KLineEvent{
		ID:       d.ID,
		Open:     d.Open,
		High:     d.High,
		Low:      d.Low,
		Close:    d.Close,
		Volume:   d.Volume,
		Interval: d.Interval,
	}
}

func parseTradeEvents(d tradesData) []types.TradeEvent {
	trades := make([]types.TradeEvent, 0, len(d.Trades))
	for _, t := range d.Trades {
		trades = append(trades, types.TradeEvent{
			Ts:   t.Ts,
			Px:   t.Px,
			Qty:  t.Qty,
			Side: t.Side,
		})
	}
	return trades
}

func parseLevels(raw [][2]float64) []market.Level {
	levels := make([]market.Level, 0, len(raw))
	for _, pair := range raw {
		levels = append(levels, market.Level{Px: pair[0], Qty: pair[1]})
	}
	return levels
}

// buildOrder maps an orderStatus push onto a local Order mirror.
func buildOrder(d orderStatusData) *order.Order {
	id := d.OrigClOrdID
	if id == "" {
		id = d.ClOrdID
	}
	ordType := types.OrderMarket
	if d.Px != 0 {
		ordType = types.OrderLimit
	}
	tif := d.TimeInForce
	if tif == "" {
		tif = types.OrderTIFGTC
	}
	return &order.Order{
		ID:           id,
		Symbol:       d.Symbol,
		Side:         d.OrderSide,
		Price:        d.Px,
		TriggerPrice: d.PxValue,
		Type:         ordType,
		Status:       d.OrderStatus,
		TIF:          tif,
		Qty:          d.OrigQty,
		FilledQty:    d.Qty,
		Condition:    d.Condition,
		ActionID:     d.ActionID,
		Contracts:    d.Contracts,
	}
}

// buildConditional maps a condOrderStatus entry onto a local mirror.
func buildConditional(d condOrderData, symbol string, futuresPrice float64, tickSize float64) (*order.ConditionalOrder, error) {
	qty := d.Qty
	if qty == 0 {
		qty = d.OrigQty
	}
	return order.NewConditional(order.CondOrderInput{
		Condition: d.Condition,
		Side:      d.Side,
		Qty:       qty,
		Price:     d.Px,
		PxValue:   d.PxValue,
		Type:      d.OrdType,
		TIF:       d.TimeInForce,
		ActionID:  d.ActionID,
		ClOrdID:   d.ClOrdID,
	}, symbol, futuresPrice, tickSize)
}

func parsePosition(d contractData, symbol string) types.Position {
	return types.Position{
		Symbol:     symbol,
		ContractID: d.ContractID,
		EntryPx:    d.Px,
		Qty:        d.Qty,
		Side:       d.Side,
	}
}
