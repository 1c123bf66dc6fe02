package types

// KLineEvent is a normalized candle pushed on a kline_* channel.
type KLineEvent struct {
	ID       int64
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
	Interval string
}

// TradeEvent is a single trade from a trades channel batch.
type TradeEvent struct {
	Ts   int64
	Px   float64
	Qty  float64
	Side OrderSide
}
