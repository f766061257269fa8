package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmptyAmount indicates an amount cell with no numeric content.
var ErrEmptyAmount = errors.New("empty amount")

// amountReplacer strips currency symbols and thousands separators before
// decimal parsing.
var amountReplacer = strings.NewReplacer(
	"₱", "",
	"PHP", "",
	"Php", "",
	"$", "",
	",", "",
	" ", "",
)

// ParseAmount converts a statement amount cell to a decimal. Parenthesized
// or minus-prefixed values are negative.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.TrimSpace(amountReplacer.Replace(s))
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// ParseDebitCredit resolves a two-column amount layout: debits are negative,
// credits are positive. Exactly one of the two cells must carry a value.
func ParseDebitCredit(debit, credit string) (decimal.Decimal, error) {
	debitSet := strings.TrimSpace(debit) != ""
	creditSet := strings.TrimSpace(credit) != ""

	switch {
	case debitSet && creditSet:
		return decimal.Zero, fmt.Errorf("both debit %q and credit %q are set", debit, credit)
	case debitSet:
		amount, err := ParseAmount(debit)
		if err != nil {
			return decimal.Zero, err
		}
		return amount.Abs().Neg(), nil
	case creditSet:
		amount, err := ParseAmount(credit)
		if err != nil {
			return decimal.Zero, err
		}
		return amount.Abs(), nil
	default:
		return decimal.Zero, ErrEmptyAmount
	}
}
