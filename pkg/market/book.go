package market

// Level is one (price, quantity) pair of an order book side.
type Level struct {
	Px  float64
	Qty float64
}

// OrderBook keeps both sides of the book. Every update replaces the sides
// wholesale; nothing is merged incrementally.
type OrderBook struct {
	Bids []Level
	Asks []Level

	bestBid float64
	bestAsk float64
}

// Replace swaps in new book sides and recomputes the best quotes.
func (b *OrderBook) Replace(bids []Level, asks []Level) {
	b.Bids = bids
	b.Asks = asks

	b.bestBid = 0
	for _, lvl := range bids {
		if lvl.Px > b.bestBid {
			b.bestBid = lvl.Px
		}
	}
	b.bestAsk = 0
	for i, lvl := range asks {
		if i == 0 || lvl.Px < b.bestAsk {
			b.bestAsk = lvl.Px
		}
	}
}

func (b *OrderBook) BestBid() float64 {
	return b.bestBid
}

func (b *OrderBook) BestAsk() float64 {
	return b.bestAsk
}
