package utils

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Money helpers work exclusively in integer centavos and basis points so that
// commission splits never lose fractions of a cent.

var ErrInvalidAmount = errors.New("valor inválido")

// ParseAmountToCents converts a BRL amount written in pt-BR notation
// ("1.234,56": thousands separated by '.', decimals by ',') into centavos.
// Amounts must be strictly positive.
func ParseAmountToCents(text string) (int64, error) {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return 0, ErrInvalidAmount
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// ParsePercentToBasisPoints converts a percent string ("2,50" or "2.5") to
// basis points, rounded to the nearest whole bp. Range checks (0..5000) are
// done at the call site, not here.
func ParsePercentToBasisPoints(text string) (int, error) {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return int(d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()), nil
}

// ComputeFee splits a gross amount into platform fee and user net. The fee is
// truncated (floor), so the platform never collects a fractional centavo more
// than amount*bps/10000.
func ComputeFee(amountInCents int64, commissionBps int) (feeInCents, netInCents int64) {
	feeInCents = amountInCents * int64(commissionBps) / 10000
	netInCents = amountInCents - feeInCents
	if netInCents < 0 {
		netInCents = 0
	}
	return feeInCents, netInCents
}
