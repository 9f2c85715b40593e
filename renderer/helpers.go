package renderer

import (
	"bytes"
	"io"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// Money formats an amount as USD with its symbol and thousands separators.
func Money(v float64) string {
	return money.NewFromFloat(v, money.USD).Display()
}

// SignedMoney is Money with an explicit sign for non-negative amounts.
func SignedMoney(v float64) string {
	if v >= 0 {
		return "+" + Money(v)
	}
	return Money(v)
}

// Percent renders a fraction in [0,1] as a percentage with one decimal.
func Percent(v float64) string {
	return decimal.NewFromFloat(v * 100).Round(1).String() + "%"
}

// Num rounds to one decimal, dropping trailing zeros.
func Num(v float64) string {
	return decimal.NewFromFloat(v).Round(1).String()
}
