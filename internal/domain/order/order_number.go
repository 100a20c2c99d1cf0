package order

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNumber builds a human-readable order number of the form
// SM-{yyyyMMdd}-{4 random digits}. The scheme is soft-unique: collisions
// within a day are possible and acceptable because the order's uuid is
// the real identifier.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("SM-%s-%04d", now.Format("20060102"), rand.Intn(10000))
}
