package order

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// clOrdIDLen is the exchange limit on client order id length.
const clOrdIDLen = 16

// NewClientOrderID generates a random client order id. The full 128 bits of
// a v4 uuid feed the hex encoding before truncation to the wire limit.
func NewClientOrderID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])[:clOrdIDLen]
}
