package seed

import (
	"math/rand/v2"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// pickCount draws a count uniformly from [lo, hi], with hi capped at the
// pool size and lo capped at hi.
func pickCount(r *rand.Rand, lo, hi, poolSize int) int {
	hi = min(hi, poolSize)
	if hi <= 0 {
		return 0
	}
	lo = min(lo, hi)
	return lo + r.IntN(hi-lo+1)
}

// sample returns k distinct elements of pool in random order.
func sample[T any](r *rand.Rand, pool []T, k int) []T {
	if k <= 0 {
		return nil
	}
	k = min(k, len(pool))
	out := make([]T, 0, k)
	for _, i := range r.Perm(len(pool))[:k] {
		out = append(out, pool[i])
	}
	return out
}

// birthdayRange returns the window of birth dates that give an age between
// minAge and maxAge (inclusive) on now.
func birthdayRange(now time.Time, minAge, maxAge int) (time.Time, time.Time) {
	earliest := now.AddDate(-(maxAge + 1), 0, 1)
	latest := now.AddDate(-minAge, 0, 0)
	return earliest, latest
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func titleFromSentence(sentence string) string {
	return strings.TrimSpace(strings.TrimRight(sentence, "."))
}
