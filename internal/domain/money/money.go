// Package money implements the VAT-inclusive monetary arithmetic used on every
// receipt and report. Amounts are IEEE-754 doubles rounded to 2 decimals with an
// epsilon bias; the exact rounding rule is load-bearing because issued receipts
// were computed with it and totals must keep matching bit-for-bit.
package money

import "math"

// epsilon counters binary floating-point error before rounding (2^-52).
const epsilon = 2.220446049250313e-16

// Round rounds to 2 decimal places with the epsilon bias. Repeated re-rounding
// of already-rounded values is the accepted way totals are built here; do not
// replace call sites with a single rounding of the raw sum.
func Round(v float64) float64 {
	v = coerce(v)
	return math.Floor((v+epsilon)*100+0.5) / 100
}

// GrossFromNet adds VAT at rate percent on top of a net amount.
func GrossFromNet(net, rate float64) (gross, vat float64) {
	net = coerce(net)
	rate = coerce(rate)
	vat = Round(net * rate / 100)
	gross = Round(net + vat)
	return gross, vat
}

// NetFromGross extracts VAT from a VAT-inclusive amount. This is the receipt
// path: vat = gross × rate/(100+rate).
func NetFromGross(gross, rate float64) (net, vat float64) {
	gross = coerce(gross)
	rate = coerce(rate)
	vat = Round(gross * rate / (100 + rate))
	net = Round(gross - vat)
	return net, vat
}

// Profit is the margin left after VAT and cost of goods.
func Profit(gross, vat, cost float64, qty int) float64 {
	return Round(coerce(gross) - coerce(vat) - coerce(cost)*float64(qty))
}

// LineTotals holds the computed monetary fields of one till line.
type LineTotals struct {
	GrossTotal float64
	VATAmount  float64
	Profit     float64
}

// ComputeLine derives gross, VAT and profit for qty units at a VAT-inclusive
// price and the given rate percent.
func ComputeLine(price, cost float64, qty int, rate float64) LineTotals {
	gross := Round(coerce(price) * float64(qty))
	_, vat := NetFromGross(gross, rate)
	return LineTotals{
		GrossTotal: gross,
		VATAmount:  vat,
		Profit:     Profit(gross, vat, cost, qty),
	}
}

// Weight is one labelled bucket of a proportional split.
type Weight struct {
	Label  string
	Weight float64
}

// Allocation is the prorated amount assigned to one bucket.
type Allocation struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// ProportionalSplit distributes total across buckets proportional to their
// weights. After per-bucket rounding the leftover remainder is assigned to the
// first bucket, so the parts always sum exactly to the rounded total. A zero or
// negative weight sum falls back to an equal split.
func ProportionalSplit(total float64, weights []Weight) []Allocation {
	if len(weights) == 0 {
		return nil
	}
	total = Round(total)

	var sum float64
	for _, w := range weights {
		if v := coerce(w.Weight); v > 0 {
			sum += v
		}
	}

	out := make([]Allocation, len(weights))
	var assigned float64
	for i, w := range weights {
		var share float64
		if sum > 0 {
			share = Round(total * math.Max(coerce(w.Weight), 0) / sum)
		} else {
			share = Round(total / float64(len(weights)))
		}
		out[i] = Allocation{Label: w.Label, Amount: share}
		assigned += share
	}
	// Rounding drift lands on the first bucket.
	out[0].Amount = Round(out[0].Amount + (total - assigned))
	return out
}

// coerce maps non-finite input to 0 rather than propagating NaN into totals.
func coerce(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
