package exchange

import (
	"fmt"
	"sync"
	"time"

	"dgtx/config"
	"dgtx/pkg/events"
	"dgtx/pkg/market"
	"dgtx/pkg/order"
	"dgtx/pkg/ratelimit"
	"dgtx/pkg/types"
	"dgtx/pkg/ws"

	log "github.com/sirupsen/logrus"
)

// DgtxExchange is a client for the Digitex futures websocket API. It keeps a
// local mirror of the exchange-side trading objects (orders, conditional
// orders, positions, trader account) and the streamed market state, updated
// exclusively from push events, and emits notifications through its event
// surface. Outbound requests go through the rate-limited sender; the exchange
// stays authoritative, so no local state changes until the matching push
// arrives.
type DgtxExchange struct {
	cfg       *config.ClientConfig
	transport ws.Transport
	sender    *ratelimit.Sender
	emitter   *events.Emitter
	market    *market.Market

	mu         sync.Mutex
	authed     bool
	trader     types.TraderAccount
	position   float64
	orders     *order.Container
	condOrders []*order.ConditionalOrder
	positions  []types.Position
	lastGap    int64

	logger *log.Entry
}

func New(cfg *config.ClientConfig) (*DgtxExchange, error) {
	wsUrl := cfg.WsURL
	if wsUrl == "" {
		wsUrl = config.DefaultWsURL
	}
	transport, err := ws.NewConn(wsUrl)
	if err != nil {
		return nil, fmt.Errorf("fail to create transport: %v", err)
	}
	return newWithTransport(cfg, transport)
}

func newWithTransport(cfg *config.ClientConfig, transport ws.Transport) (*DgtxExchange, error) {
	if cfg.Symbol == "" {
		return nil, fmt.Errorf("symbol must be set")
	}
	retryDelay := time.Duration(cfg.RetryMS) * time.Millisecond
	e := &DgtxExchange{
		cfg:       cfg,
		transport: transport,
		sender:    ratelimit.NewSender(transport, ratelimit.DefaultMax, retryDelay),
		emitter:   events.NewEmitter(),
		market:    market.New(cfg.Symbol, cfg.TickSize, cfg.Depth),
		orders:    order.NewContainer(),
		logger: log.WithFields(log.Fields{
			"symbol": cfg.Symbol,
		}),
	}
	transport.OnOpen(e.handleOpen)
	transport.OnMessage(e.handleMessage)
	transport.OnClose(func() { e.emitter.Emit(events.Close, nil) })
	transport.OnError(func(err error) { e.emitter.Emit(events.WsError, err) })
	return e, nil
}

// On subscribes a handler to one event kind.
func (e *DgtxExchange) On(kind events.Kind, h events.Handler) {
	e.emitter.On(kind, h)
}

// Connect opens the transport. Subscription and auth requests are sent from
// the open callback.
func (e *DgtxExchange) Connect() error {
	return e.transport.Open()
}

// Close tears the client down: pending deferred sends and the rate-window
// timer are cancelled before the transport goes away.
func (e *DgtxExchange) Close() {
	e.sender.Close()
	if err := e.transport.Close(); err != nil {
		e.logger.Errorf("fail to close transport: %v", err)
	}
}

func (e *DgtxExchange) handleOpen() {
	e.emitter.Emit(events.Connect, nil)
	e.subscribe()
	e.authenticate()
}

func (e *DgtxExchange) subscribe() {
	topics := []string{
		"kline_1min",
		"trades",
		fmt.Sprintf("orderbook_%d", e.market.Depth),
		"index",
	}
	params := make([]string, 0, len(topics))
	for _, topic := range topics {
		params = append(params, fmt.Sprintf("%s@%s", e.cfg.Symbol, topic))
	}
	e.send(reqSubscribe, "subscribe", params)
}

func (e *DgtxExchange) authenticate() {
	e.send(reqAuth, "auth", authParams{Type: "token", Value: e.cfg.APIKey})
}

// send marshals one request envelope and hands it to the rate-limited sender.
func (e *DgtxExchange) send(id int, method string, params any) {
	msg, err := marshalRequest(id, method, params)
	if err != nil {
		e.logger.Errorf("fail to marshal %v request: %v", method, err)
		return
	}
	e.sender.Send(msg)
}

// ╔═════════════╗
//     Trading
// ╚═════════════╝

// PlaceOrderInput describes one order. Entry == 0 means a market order; a
// quantity below 1 is raised to 1; an empty TIF defaults to GTC.
type PlaceOrderInput struct {
	Side  types.OrderSide
	Qty   float64
	Entry float64
	TIF   types.OrderTIF
}

// PlaceOrder submits a new order. Local state is not touched until the
// corresponding orderStatus push arrives.
func (e *DgtxExchange) PlaceOrder(in PlaceOrderInput) (string, error) {
	if in.Side != types.OrderSideBuy && in.Side != types.OrderSideSell {
		return "", fmt.Errorf("side must be %v or %v, got %q", types.OrderSideBuy, types.OrderSideSell, in.Side)
	}
	qty := in.Qty
	if qty < 1 {
		qty = 1
	}
	tif := in.TIF
	if tif == "" {
		tif = types.OrderTIFGTC
	}
	ordType := types.OrderMarket
	if in.Entry != 0 {
		ordType = types.OrderLimit
	}
	clOrdID := order.NewClientOrderID()
	e.send(reqPlaceOrder, "placeOrder", order.PlaceOrderParams{
		ClOrdID:     clOrdID,
		OrdType:     ordType,
		Px:          in.Entry,
		Qty:         qty,
		Side:        in.Side,
		Symbol:      e.cfg.Symbol,
		TimeInForce: tif,
	})
	return clOrdID, nil
}

// PlaceConditional validates and submits a conditional order. Validation
// failures surface here, before anything is sent.
func (e *DgtxExchange) PlaceConditional(in order.CondOrderInput) (*order.ConditionalOrder, error) {
	e.mu.Lock()
	futuresPrice := e.market.FuturesPrice
	e.mu.Unlock()

	cond, err := order.NewConditional(in, e.cfg.Symbol, futuresPrice, e.market.TickSize)
	if err != nil {
		return nil, err
	}
	params, err := cond.PlaceParams()
	if err != nil {
		return nil, err
	}
	e.send(reqPlaceCondOrder, "placeCondOrder", params)
	return cond, nil
}

// CancelFilter narrows CancelAllOrders to one side or one price level. The
// zero value cancels everything.
type CancelFilter struct {
	Side types.OrderSide
	Px   float64
}

// CancelAllOrders cancels every active order matching the filter.
func (e *DgtxExchange) CancelAllOrders(filter CancelFilter) {
	params := cancelAllOrdersParams{Symbol: e.cfg.Symbol}
	if filter.Side != "" {
		params.Side = filter.Side
	} else if filter.Px != 0 {
		params.Px = filter.Px
	}
	e.send(reqCancelAllOrders, "cancelAllOrders", params)
}

// CancelAllConditionals cancels every conditional order of the trader.
func (e *DgtxExchange) CancelAllConditionals() {
	e.send(reqCancelCondOrder, "cancelCondOrder", cancelAllCondParams{
		AllForTrader: true,
		Symbol:       e.cfg.Symbol,
	})
}

// CancelOrder sends a prebuilt cancel payload, as produced by
// Order.CancelParams or ConditionalOrder.CancelParams.
func (e *DgtxExchange) CancelOrder(params any) {
	switch params.(type) {
	case order.CancelCondOrderParams, *order.CancelCondOrderParams:
		e.send(reqCancelCondOrder, "cancelCondOrder", params)
	default:
		e.send(reqCancelOrder, "cancelOrder", params)
	}
}

// SetLeverage changes leverage for all positions on the symbol.
func (e *DgtxExchange) SetLeverage(leverage int) {
	e.send(reqChangeLeverage, "changeLeverageAll", changeLeverageParams{
		Leverage: leverage,
		Symbol:   e.cfg.Symbol,
	})
}

// RequestTraderStatus asks for a full trader snapshot; the reply arrives as a
// traderStatus push.
func (e *DgtxExchange) RequestTraderStatus() {
	e.send(reqGetTraderStatus, "getTraderStatus", traderStatusParams{Symbol: e.cfg.Symbol})
}

// ╔═════════════╗
//       Info
// ╚═════════════╝

func (e *DgtxExchange) Connected() bool {
	return e.transport.ReadyState() == ws.StateOpen
}

func (e *DgtxExchange) Authed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.authed
}

func (e *DgtxExchange) Trader() types.TraderAccount {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trader
}

func (e *DgtxExchange) Balance() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trader.Balance
}

// CurrentLeverage reads the leverage of the latest trader snapshot.
func (e *DgtxExchange) CurrentLeverage() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trader.Leverage
}

// Position is the net position size; negative when short.
func (e *DgtxExchange) Position() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position
}

func (e *DgtxExchange) Spot() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.market.Spot
}

func (e *DgtxExchange) FuturesPrice() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.market.FuturesPrice
}

func (e *DgtxExchange) SpreadGap() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.market.SpreadGap()
}

func (e *DgtxExchange) Book() (bids []market.Level, asks []market.Level) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.market.Book.Bids, e.market.Book.Asks
}

func (e *DgtxExchange) Orders() []*order.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orders.List()
}

func (e *DgtxExchange) ConditionalOrders() []*order.ConditionalOrder {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*order.ConditionalOrder, len(e.condOrders))
	copy(out, e.condOrders)
	return out
}

func (e *DgtxExchange) Positions() []types.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]types.Position, len(e.positions))
	copy(out, e.positions)
	return out
}

// LevelHasOrder reports whether any active order sits at the price level.
func (e *DgtxExchange) LevelHasOrder(px float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orders.HasLevel(px)
}

// TotalContracts sums the quantities of all active orders.
func (e *DgtxExchange) TotalContracts() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orders.TotalQty()
}
