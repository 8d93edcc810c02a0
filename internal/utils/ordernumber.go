package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const orderTokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// FallbackOrderNumber synthesizes an order number when the counter table is
// unreachable: FW-<unix millis>-<9 random chars>. Not collision-free, but the
// millisecond timestamp plus the token makes a clash vanishingly unlikely and
// checkout keeps working through a counter outage.
func FallbackOrderNumber() string {
	token := make([]byte, 9)
	max := big.NewInt(int64(len(orderTokenAlphabet)))
	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			token[i] = orderTokenAlphabet[time.Now().UnixNano()%int64(len(orderTokenAlphabet))]
			continue
		}
		token[i] = orderTokenAlphabet[n.Int64()]
	}
	return fmt.Sprintf("FW-%d-%s", time.Now().UnixMilli(), token)
}
