package market

import "math"

const (
	MinDepth = 1
	MaxDepth = 25
)

// Market holds the streamed market state of a single contract: the order
// book, the spot index price and the futures mark price. Mutation happens
// only from the client's dispatch path.
type Market struct {
	Symbol   string
	TickSize float64 // min price movement
	Depth    int     // subscribed order book depth, clamped to [MinDepth, MaxDepth]

	Book         OrderBook
	Spot         float64 // spot index price, truncated to a whole number
	FuturesPrice float64 // price of the latest trade in the newest batch
}

func New(symbol string, tickSize float64, depth int) *Market {
	if tickSize <= 0 {
		tickSize = 1
	}
	if depth < MinDepth {
		depth = MinDepth
	}
	if depth > MaxDepth {
		depth = MaxDepth
	}
	return &Market{
		Symbol:   symbol,
		TickSize: tickSize,
		Depth:    depth,
	}
}

// SpreadGap is the number of empty tick levels between best bid and best ask.
func (m *Market) SpreadGap() int64 {
	return int64(math.Round((m.Book.BestAsk()-m.Book.BestBid())/m.TickSize)) - 1
}

// SetSpot stores the spot index price truncated to a whole number.
func (m *Market) SetSpot(px float64) {
	m.Spot = math.Trunc(px)
}
