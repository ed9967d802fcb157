package services

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	referencePrefix       = "BK"
	referenceSuffixLength = 4
	maxReferenceAttempts  = 5
)

var base36 = big.NewInt(36)

// NewBookingReference returns e.g. "BK-LZ2K9Q1A-7F3X": a base-36 millisecond
// timestamp plus a random base-36 suffix. Uniqueness is enforced by the store.
func NewBookingReference(now time.Time) string {
	var suffix strings.Builder
	for range referenceSuffixLength {
		n, err := rand.Int(rand.Reader, base36)
		if err != nil {
			n = big.NewInt(now.UnixNano() % 36)
		}
		suffix.WriteString(strconv.FormatInt(n.Int64(), 36))
	}

	stamp := strconv.FormatInt(now.UnixMilli(), 36)

	return strings.ToUpper(referencePrefix + "-" + stamp + "-" + suffix.String())
}
