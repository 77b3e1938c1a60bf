package service

import (
	"crypto/rand"
	"fmt"
	"time"
)

const (
	referencePrefix    = "BK"
	referenceSuffixLen = 5
	base36Alphabet     = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewBookingReference produces a human-readable booking reference:
// a fixed prefix, the current epoch millis and a random uppercase
// base36 suffix. Uniqueness is enforced by the storage layer; callers
// retry on conflict.
func NewBookingReference() string {
	random := make([]byte, referenceSuffixLen)
	_, _ = rand.Read(random)

	suffix := make([]byte, referenceSuffixLen)
	for i, b := range random {
		suffix[i] = base36Alphabet[int(b)%len(base36Alphabet)]
	}

	return fmt.Sprintf("%s%d%s", referencePrefix, time.Now().UnixMilli(), suffix)
}
