package exchange

// errorCodes maps the exchange's numeric protocol error codes to human
// readable messages.
var errorCodes = map[int]string{
	3:     "ID already exists.",
	10:    "ID Doesn't exist.",
	14:    "Unknown trader.",
	18:    "Invalid leverage.",
	19:    "Invalid price.",
	20:    "Invalid quantity.",
	22:    "No market price.",
	27:    "Not enough balance.",
	34:    "Invalid contract ID.",
	35:    "Rate limit exceeded.",
	36:    "No contracts.",
	37:    "No opposing orders.",
	40:    "Price is worse than liquidation price.",
	45:    "Tournament in progress.",
	53:    "Max quantity exceeded.",
	54:    "PnL is too negative.",
	55:    "Order would become invalid.",
	58:    "Trading suspended.",
	63:    "Can't be filled.",
	65:    "Too many conditional orders.",
	68:    "Too many orders.",
	3001:  "Bad Request (invalid parameters, etc.).",
	3002:  "Channel not found.",
	3003:  "Contract not found.",
	3004:  "Index not found.",
	3005:  "Kline interval not specified.",
	3006:  "Kline interval not found.",
	3007:  "Orderbook depth not specified.",
	3008:  "Invalid orderbook depth.",
	3009:  "Already subscribed for the topic.",
	3010:  "Not subscribed for the topic.",
	3011:  "Feature is not implemented yet.",
	3012:  "The front fell off.",
	3013:  "Not authorized.",
	3014:  "Already authorized.",
	3015:  "Trading is not available.",
	3016:  "Authentication in progress.",
	3017:  "Request limit exceeded.",
	4001:  "System maintenance.",
	10501: "Invalid credentials.",
}

// ErrorMessage resolves a protocol error code to its message.
func ErrorMessage(code int) string {
	if msg, ok := errorCodes[code]; ok {
		return msg
	}
	return "Unknown Error Code"
}
