package market

import "testing"

func TestReplaceComputesBestQuotes(t *testing.T) {
	m := New("BTCUSD-PERP", 1, 10)

	m.Book.Replace(
		[]Level{{Px: 100, Qty: 5}, {Px: 99, Qty: 3}},
		[]Level{{Px: 101, Qty: 2}, {Px: 102, Qty: 4}},
	)

	if m.Book.BestBid() != 100 {
		t.Fatalf("best bid = %v, want 100", m.Book.BestBid())
	}
	if m.Book.BestAsk() != 101 {
		t.Fatalf("best ask = %v, want 101", m.Book.BestAsk())
	}
	if gap := m.SpreadGap(); gap != 0 {
		t.Fatalf("spread gap = %v, want 0", gap)
	}
}

func TestReplaceIsWholesale(t *testing.T) {
	m := New("BTCUSD-PERP", 1, 10)

	m.Book.Replace(
		[]Level{{Px: 100, Qty: 5}},
		[]Level{{Px: 101, Qty: 2}},
	)
	m.Book.Replace(
		[]Level{{Px: 90, Qty: 1}},
		[]Level{{Px: 95, Qty: 1}, {Px: 94, Qty: 2}},
	)

	if len(m.Book.Bids) != 1 || len(m.Book.Asks) != 2 {
		t.Fatalf("book sides not replaced: %v bids, %v asks", len(m.Book.Bids), len(m.Book.Asks))
	}
	if m.Book.BestBid() != 90 {
		t.Fatalf("best bid = %v, want 90", m.Book.BestBid())
	}
	if m.Book.BestAsk() != 94 {
		t.Fatalf("best ask = %v, want 94", m.Book.BestAsk())
	}
}

func TestSpreadGapUsesTickSize(t *testing.T) {
	m := New("BTCUSD-PERP", 5, 10)

	m.Book.Replace(
		[]Level{{Px: 100, Qty: 1}},
		[]Level{{Px: 120, Qty: 1}},
	)

	// (120-100)/5 - 1 = 3 empty levels
	if gap := m.SpreadGap(); gap != 3 {
		t.Fatalf("spread gap = %v, want 3", gap)
	}
}

func TestDepthClampAndDefaults(t *testing.T) {
	if m := New("BTCUSD-PERP", 0, 0); m.Depth != MinDepth || m.TickSize != 1 {
		t.Fatalf("unexpected defaults: depth=%v tickSize=%v", m.Depth, m.TickSize)
	}
	if m := New("BTCUSD-PERP", 1, 100); m.Depth != MaxDepth {
		t.Fatalf("depth = %v, want %v", m.Depth, MaxDepth)
	}
}

func TestSetSpotTruncates(t *testing.T) {
	m := New("BTCUSD-PERP", 1, 10)
	m.SetSpot(10250.75)
	if m.Spot != 10250 {
		t.Fatalf("spot = %v, want 10250", m.Spot)
	}
}
