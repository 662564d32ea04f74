package test

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomASCIIString returns an alphanumeric string whose length lies in [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)
	n := minLen + rand.IntN(maxLen-minLen+1)

	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(alphanumeric[rand.IntN(len(alphanumeric))])
	}
	return b.String()
}

// RandomEmail builds a throwaway address so parallel registrations never collide.
func RandomEmail(local string) string {
	return fmt.Sprintf("%s.%s@restaurant.test", local, strings.ToLower(RandomASCIIString(6, 6)))
}

// RandomPhone returns a nine digit mobile number.
func RandomPhone() string {
	return fmt.Sprintf("6%08d", rand.IntN(100_000_000))
}
