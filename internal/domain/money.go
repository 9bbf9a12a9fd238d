package domain

import "fmt"

// Money is an amount in integer cents (AUD). All currency arithmetic in the
// core is integer arithmetic; floats never touch money.
type Money int64

// Cents returns the raw cent value.
func (m Money) Cents() int64 { return int64(m) }

func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
