package exchange

import (
	"encoding/json"
	"strings"
	"testing"

	"dgtx/pkg/order"
	"dgtx/pkg/types"
)

func decodeRequest(t *testing.T, msg string) (int, string, map[string]any) {
	t.Helper()
	var req struct {
		ID     int             `json:"id"`
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal([]byte(msg), &req); err != nil {
		t.Fatalf("fail to decode request %q: %v", msg, err)
	}
	params := make(map[string]any)
	if len(req.Params) > 0 && req.Params[0] == '{' {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			t.Fatalf("fail to decode params %q: %v", req.Params, err)
		}
	}
	return req.ID, req.Method, params
}

func TestPlaceOrderDefaults(t *testing.T) {
	e, ft := newTestExchange(t)

	clOrdID, err := e.PlaceOrder(PlaceOrderInput{Side: types.OrderSideBuy})
	if err != nil {
		t.Fatal(err)
	}
	if len(clOrdID) != 16 {
		t.Fatalf("clOrdId %q has length %v, want 16", clOrdID, len(clOrdID))
	}

	id, method, params := decodeRequest(t, ft.lastSent())
	if id != reqPlaceOrder || method != "placeOrder" {
		t.Fatalf("request = %v %v", id, method)
	}
	if params["ordType"] != "MARKET" {
		t.Fatalf("ordType = %v, want MARKET without entry", params["ordType"])
	}
	if params["qty"] != 1.0 {
		t.Fatalf("qty = %v, want default 1", params["qty"])
	}
	if params["timeInForce"] != "GTC" {
		t.Fatalf("timeInForce = %v, want default GTC", params["timeInForce"])
	}
	if _, hasPx := params["px"]; hasPx {
		t.Fatal("market order carries a px")
	}
	// nothing is mirrored locally until the exchange confirms
	if len(e.Orders()) != 0 {
		t.Fatal("order appended before orderStatus push")
	}
}

func TestPlaceOrderLimit(t *testing.T) {
	e, ft := newTestExchange(t)

	if _, err := e.PlaceOrder(PlaceOrderInput{Side: types.OrderSideSell, Qty: 10, Entry: 15005, TIF: types.OrderTIFIOC}); err != nil {
		t.Fatal(err)
	}

	_, _, params := decodeRequest(t, ft.lastSent())
	if params["ordType"] != "LIMIT" || params["px"] != 15005.0 || params["qty"] != 10.0 {
		t.Fatalf("unexpected params: %v", params)
	}
	if params["side"] != "SELL" || params["timeInForce"] != "IOC" {
		t.Fatalf("unexpected params: %v", params)
	}
}

func TestPlaceOrderRejectsMissingSide(t *testing.T) {
	e, ft := newTestExchange(t)
	if _, err := e.PlaceOrder(PlaceOrderInput{Qty: 1}); err == nil {
		t.Fatal("missing side accepted")
	}
	if len(ft.sentMessages()) != 0 {
		t.Fatal("request sent despite validation failure")
	}
}

func TestPlaceConditionalSendsDerivedPayload(t *testing.T) {
	e, ft := newTestExchange(t)
	ft.deliver(`{"ch":"trades","data":{"trades":[{"ts":1,"px":10000,"qty":1}]}}`)

	cond, err := e.PlaceConditional(order.CondOrderInput{
		Condition: types.ConditionLessEqual,
		Side:      types.OrderSideBuy,
		Qty:       2,
		Price:     9900,
		Offset:    &order.Offset{Trigger: 10},
	})
	if err != nil {
		t.Fatal(err)
	}
	if cond == nil {
		t.Fatal("no conditional order returned")
	}

	id, method, params := decodeRequest(t, ft.lastSent())
	if id != reqPlaceCondOrder || method != "placeCondOrder" {
		t.Fatalf("request = %v %v", id, method)
	}
	if params["px"] != 9900.0 || params["pxValue"] != 9890.0 {
		t.Fatalf("px = %v pxValue = %v, want 9900 / 9890", params["px"], params["pxValue"])
	}
	if params["pxType"] != order.PxTypeSpot {
		t.Fatalf("pxType = %v", params["pxType"])
	}
	// not mirrored until condOrderStatus ACCEPTED arrives
	if len(e.ConditionalOrders()) != 0 {
		t.Fatal("conditional appended before push")
	}
}

func TestPlaceConditionalFailsBeforeSend(t *testing.T) {
	e, ft := newTestExchange(t)

	if _, err := e.PlaceConditional(order.CondOrderInput{Condition: "BOGUS", Side: types.OrderSideBuy}); err == nil {
		t.Fatal("bad condition accepted")
	}
	if len(ft.sentMessages()) != 0 {
		t.Fatal("request sent despite validation failure")
	}
}

func TestCancelAllOrdersFilters(t *testing.T) {
	e, ft := newTestExchange(t)

	e.CancelAllOrders(CancelFilter{})
	_, method, params := decodeRequest(t, ft.lastSent())
	if method != "cancelAllOrders" || params["symbol"] != "BTCUSD-PERP" {
		t.Fatalf("unexpected request: %v %v", method, params)
	}
	if _, ok := params["side"]; ok {
		t.Fatal("unfiltered cancel carries a side")
	}

	e.CancelAllOrders(CancelFilter{Side: types.OrderSideBuy})
	_, _, params = decodeRequest(t, ft.lastSent())
	if params["side"] != "BUY" {
		t.Fatalf("side = %v, want BUY", params["side"])
	}

	e.CancelAllOrders(CancelFilter{Px: 15005})
	_, _, params = decodeRequest(t, ft.lastSent())
	if params["px"] != 15005.0 {
		t.Fatalf("px = %v, want 15005", params["px"])
	}
}

func TestCancelAllConditionals(t *testing.T) {
	e, ft := newTestExchange(t)

	e.CancelAllConditionals()

	id, method, params := decodeRequest(t, ft.lastSent())
	if id != reqCancelCondOrder || method != "cancelCondOrder" {
		t.Fatalf("request = %v %v", id, method)
	}
	if params["allForTrader"] != true {
		t.Fatal("cancel-all must be allForTrader")
	}
}

func TestCancelOrderPassthrough(t *testing.T) {
	e, ft := newTestExchange(t)

	plain := &order.Order{ID: "abc", Symbol: "BTCUSD-PERP"}
	e.CancelOrder(plain.CancelParams())
	id, method, params := decodeRequest(t, ft.lastSent())
	if id != reqCancelOrder || method != "cancelOrder" || params["clOrdId"] != "abc" {
		t.Fatalf("unexpected request: %v %v %v", id, method, params)
	}

	cond := &order.Order{ID: "abc", Symbol: "BTCUSD-PERP", TriggerPrice: 100, ActionID: "act"}
	e.CancelOrder(cond.CancelParams())
	id, method, params = decodeRequest(t, ft.lastSent())
	if id != reqCancelCondOrder || method != "cancelCondOrder" || params["actionId"] != "act" {
		t.Fatalf("unexpected request: %v %v %v", id, method, params)
	}
}

func TestSetLeverage(t *testing.T) {
	e, ft := newTestExchange(t)

	e.SetLeverage(10)

	id, method, params := decodeRequest(t, ft.lastSent())
	if id != reqChangeLeverage || method != "changeLeverageAll" {
		t.Fatalf("request = %v %v", id, method)
	}
	if params["leverage"] != 10.0 || params["symbol"] != "BTCUSD-PERP" {
		t.Fatalf("unexpected params: %v", params)
	}
}

func TestRequestTraderStatus(t *testing.T) {
	e, ft := newTestExchange(t)

	e.RequestTraderStatus()

	id, method, _ := decodeRequest(t, ft.lastSent())
	if id != reqGetTraderStatus || method != "getTraderStatus" {
		t.Fatalf("request = %v %v", id, method)
	}
}

func TestSubscribeTopicsCarrySymbolPrefix(t *testing.T) {
	e, ft := newTestExchange(t)
	e.subscribe()

	msg := ft.lastSent()
	for _, topic := range []string{"kline_1min", "trades", "orderbook_5", "index"} {
		if !strings.Contains(msg, "BTCUSD-PERP@"+topic) {
			t.Fatalf("subscribe request misses topic %v: %v", topic, msg)
		}
	}
}
