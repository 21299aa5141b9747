package services

import (
	"math/rand/v2"
	"strconv"
)

// AccountGenerator produces handles for users that sign up without one.
type AccountGenerator interface {
	NextAccount() string
}

// RandomAccountGenerator draws a uniform 10-digit number. Collisions between
// concurrent signups are possible and left to the store's unique index.
type RandomAccountGenerator struct{}

func (RandomAccountGenerator) NextAccount() string {
	return strconv.FormatInt(1_000_000_000+rand.Int64N(9_000_000_000), 10)
}

// AccountGeneratorFunc adapts a plain function.
type AccountGeneratorFunc func() string

func (f AccountGeneratorFunc) NextAccount() string { return f() }

func defaultEmail(account string) string {
	return "mail@" + account + ".me"
}
