package exchange

import (
	"encoding/json"
	"strings"

	"dgtx/pkg/events"
	"dgtx/pkg/types"
)

// handleMessage classifies one inbound frame and routes it to the matching
// state-update and event-emission path. Malformed frames fail the dispatch of
// that single frame only; the session keeps running.
func (e *DgtxExchange) handleMessage(raw []byte) {
	// heartbeat is a bare literal, not a structured frame
	if string(raw) == "ping" {
		e.sender.Send([]byte("pong"))
		return
	}

	f, err := parseFrame(raw)
	if err != nil {
		e.logger.Warnf("skip malformed frame: %v: %v", err, string(raw))
		return
	}

	if f.ID == reqAuth {
		// a rejected auth carries the same id with an error status
		if f.Status == "error" {
			e.emitter.Emit(events.SystemError, ErrorMessage(f.Code))
			return
		}
		e.mu.Lock()
		e.authed = true
		e.mu.Unlock()
		e.logger.Info("authorized")
		e.RequestTraderStatus()
		return
	}

	switch {
	case f.Ch == "index":
		e.handleIndex(f.Data)
	case strings.HasPrefix(f.Ch, "kline_"):
		e.handleKLine(f.Data)
	case strings.HasPrefix(f.Ch, "orderbook_"):
		e.handleOrderbook(f.Data)
	case f.Ch == "orderFilled":
		e.handleOrderFilled(f.Data)
	case f.Ch == "trades":
		e.handleTrades(f.Data)
	case f.Ch == "orderStatus":
		e.handleOrderStatus(f.Data)
	case f.Ch == "orderCancelled":
		e.handleOrderCancelled(f.Data)
	case f.Ch == "traderStatus":
		e.handleTraderStatus(f.Data)
	case f.Ch == "condOrderStatus":
		e.handleCondOrderStatus(f.Data)
	case f.Status == "error":
		e.emitter.Emit(events.SystemError, ErrorMessage(f.Code))
	default:
		e.emitter.Emit(events.Raw, f)
	}
}

func (e *DgtxExchange) handleIndex(data json.RawMessage) {
	var d indexData
	if err := json.Unmarshal(data, &d); err != nil {
		e.logger.Warnf("skip malformed index push: %v", err)
		return
	}
	e.mu.Lock()
	e.market.SetSpot(d.SpotPx)
	e.mu.Unlock()
	e.emitter.Emit(events.SpotUpdate, d.SpotPx)
}

func (e *DgtxExchange) handleKLine(data json.RawMessage) {
	var d klineData
	if err := json.Unmarshal(data, &d); err != nil {
		e.logger.Warnf("skip malformed kline push: %v", err)
		return
	}
	e.emitter.Emit(events.KLine, parseKLineEvent(d))
}

// handleOrderbook replaces both book sides and emits gapChange only when the
// derived gap actually moved. Book pushes arriving before the first spot
// price are dropped; the spread is meaningless before warm-up.
func (e *DgtxExchange) handleOrderbook(data json.RawMessage) {
	var d orderbookData
	if err := json.Unmarshal(data, &d); err != nil {
		e.logger.Warnf("skip malformed orderbook push: %v", err)
		return
	}

	e.mu.Lock()
	if e.market.Spot == 0 {
		e.mu.Unlock()
		return
	}
	e.market.Book.Replace(parseLevels(d.Bids), parseLevels(d.Asks))
	gap := e.market.SpreadGap()
	changed := gap != e.lastGap
	if changed {
		e.lastGap = gap
	}
	e.mu.Unlock()

	if changed {
		e.emitter.Emit(events.GapChange, gap)
	}
}

func (e *DgtxExchange) handleOrderFilled(data json.RawMessage) {
	var d orderFilledData
	if err := json.Unmarshal(data, &d); err != nil {
		e.logger.Warnf("skip malformed orderFilled push: %v", err)
		return
	}
	e.mu.Lock()
	e.orders.Remove(d.OrigClOrdID)
	e.mu.Unlock()
	e.emitter.Emit(events.OrderFilled, data)
}

// handleTrades emits the batch and refreshes the futures mark price from the
// trade carrying the newest timestamp.
func (e *DgtxExchange) handleTrades(data json.RawMessage) {
	var d tradesData
	if err := json.Unmarshal(data, &d); err != nil {
		e.logger.Warnf("skip malformed trades push: %v", err)
		return
	}
	trades := parseTradeEvents(d)
	e.emitter.Emit(events.Trades, trades)
	if len(trades) == 0 {
		return
	}

	var maxTs int64
	for _, t := range trades {
		if t.Ts > maxTs {
			maxTs = t.Ts
		}
	}
	var latestPx float64
	for _, t := range trades {
		if t.Ts == maxTs {
			latestPx = t.Px
			break
		}
	}

	e.mu.Lock()
	changed := latestPx != e.market.FuturesPrice
	if changed {
		e.market.FuturesPrice = latestPx
	}
	e.mu.Unlock()

	if changed {
		e.emitter.Emit(events.FuturesPxUpdate, latestPx)
	}
}

func (e *DgtxExchange) handleOrderStatus(data json.RawMessage) {
	var d orderStatusData
	if err := json.Unmarshal(data, &d); err != nil {
		e.logger.Warnf("skip malformed orderStatus push: %v", err)
		return
	}

	e.mu.Lock()
	e.trader = d.account()
	e.mu.Unlock()

	switch d.OrderStatus {
	case types.OrderStatusAccepted:
		o := buildOrder(d)
		e.mu.Lock()
		e.orders.Add(o)
		e.mu.Unlock()
		e.emitter.Emit(events.OrderPlaced, o)
	case types.OrderStatusRejected:
		e.emitter.Emit(events.OrderRejected, ErrorMessage(d.ErrCode))
	default:
		e.logger.Warnf("unknown order status: %v", d.OrderStatus)
		e.mu.Lock()
		if existing := e.orders.Get(d.OrigClOrdID); existing != nil {
			existing.Update(d.Qty, d.DroppedQty)
		} else {
			e.orders.Add(buildOrder(d))
		}
		e.mu.Unlock()
	}
}

func (e *DgtxExchange) handleOrderCancelled(data json.RawMessage) {
	var d orderCancelledData
	if err := json.Unmarshal(data, &d); err != nil {
		e.logger.Warnf("skip malformed orderCancelled push: %v", err)
		return
	}

	e.mu.Lock()
	e.trader = d.account()
	e.mu.Unlock()

	for _, o := range d.Orders {
		e.mu.Lock()
		e.orders.Remove(o.OrigClOrdID)
		e.mu.Unlock()
		e.emitter.Emit(events.OrderCancelled, o)
	}
}

// handleTraderStatus is a full resync: the account snapshot is replaced and
// the orders, conditional orders and positions collections are rebuilt
// wholesale from the push.
func (e *DgtxExchange) handleTraderStatus(data json.RawMessage) {
	var d traderStatusData
	if err := json.Unmarshal(data, &d); err != nil {
		e.logger.Warnf("skip malformed traderStatus push: %v", err)
		return
	}

	e.mu.Lock()
	e.trader = d.account()
	if d.PositionType == "SHORT" {
		e.position = -d.PositionContracts
	} else {
		e.position = d.PositionContracts
	}

	e.orders.Reset()
	for _, od := range d.ActiveOrders {
		od.Symbol = d.Symbol
		e.orders.Add(buildOrder(od))
	}

	e.condOrders = e.condOrders[:0]
	for _, cd := range d.ConditionalOrders {
		cond, err := buildConditional(cd, d.Symbol, e.market.FuturesPrice, e.market.TickSize)
		if err != nil {
			e.logger.Warnf("skip conditional order %v in trader status: %v", cd.ClOrdID, err)
			continue
		}
		e.condOrders = append(e.condOrders, cond)
	}

	e.positions = e.positions[:0]
	for _, cd := range d.Contracts {
		e.positions = append(e.positions, parsePosition(cd, d.Symbol))
	}

	trader := e.trader
	orders := e.orders.Len()
	conds := len(e.condOrders)
	positions := len(e.positions)
	e.mu.Unlock()

	e.logger.Infof("trader status: balance=%v orders=%v conditionals=%v positions=%v pnl=%v upnl=%v",
		trader.Balance, orders, conds, positions, trader.PnL, trader.UPnL)
	e.emitter.Emit(events.TraderStatus, trader)
}

func (e *DgtxExchange) handleCondOrderStatus(data json.RawMessage) {
	var d condOrderStatusData
	if err := json.Unmarshal(data, &d); err != nil {
		e.logger.Warnf("skip malformed condOrderStatus push: %v", err)
		return
	}

	switch d.Status {
	case types.OrderStatusAccepted:
		e.mu.Lock()
		futuresPrice := e.market.FuturesPrice
		e.mu.Unlock()
		for _, cd := range d.ConditionalOrders {
			cond, err := buildConditional(cd, d.Symbol, futuresPrice, e.market.TickSize)
			if err != nil {
				e.logger.Warnf("skip accepted conditional order %v: %v", cd.ClOrdID, err)
				continue
			}
			e.mu.Lock()
			e.condOrders = append(e.condOrders, cond)
			e.mu.Unlock()
			e.emitter.Emit(events.ConditionalPlaced, cond)
		}
	case types.OrderStatusCancelled:
		for _, cd := range d.ConditionalOrders {
			e.removeConditional(cd.ClOrdID)
			e.emitter.Emit(events.ConditionalCancelled, cd)
		}
	case types.OrderStatusTriggered:
		for _, cd := range d.ConditionalOrders {
			e.removeConditional(cd.ClOrdID)
			e.emitter.Emit(events.ConditionalTriggered, cd)
		}
	case types.OrderStatusRejected:
		e.emitter.Emit(events.ConditionalRejected, ErrorMessage(d.ErrCode))
	default:
		e.logger.Warnf("unknown conditional status: %v", d.Status)
	}
}

func (e *DgtxExchange) removeConditional(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.condOrders[:0]
	for _, c := range e.condOrders {
		if !c.Is(id) {
			kept = append(kept, c)
		}
	}
	e.condOrders = kept
}
