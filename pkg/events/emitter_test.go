package events

import "testing"

func TestEmitReachesAllHandlers(t *testing.T) {
	e := NewEmitter()
	var got []any
	e.On(SpotUpdate, func(p any) { got = append(got, p) })
	e.On(SpotUpdate, func(p any) { got = append(got, p) })

	e.Emit(SpotUpdate, 10250.0)

	if len(got) != 2 {
		t.Fatalf("handlers invoked %v times, want 2", len(got))
	}
	if got[0] != 10250.0 || got[1] != 10250.0 {
		t.Fatalf("unexpected payloads: %v", got)
	}
}

func TestEmitUnknownKindIsNoop(t *testing.T) {
	e := NewEmitter()
	e.On(KLine, func(p any) { t.Fatal("wrong kind delivered") })
	e.Emit(Trades, nil)
}
