package stockfolio

import (
	"math"

	"github.com/ycwu/stockfolio/date"
)

const (
	xirrMaxIterations = 100
	xirrTolerance     = 1e-7
	xirrInitialGuess  = 0.1
	xirrMinRate       = -0.999
	xirrMaxRate       = 1_000_000
)

// XIRR solves the internal rate of return for cash flows on irregular
// dates. It needs at least two flows with at least one investment
// (negative) and one withdrawal (positive); anything else has no solution
// and returns false.
//
// Newton-Raphson is tried first; it diverges on extreme or short-duration
// patterns (a same-day round trip, say), so a geometric-bracket bisection
// takes over when it fails. Bisection converges for any bracketing sign
// change. The result is rounded to 6 decimals.
func XIRR(flows []CashFlow) (float64, bool) {
	if len(flows) < 2 {
		return 0, false
	}
	var hasPositive, hasNegative bool
	for _, f := range flows {
		if f.Amount > 0 {
			hasPositive = true
		}
		if f.Amount < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return 0, false
	}

	earliest := flows[0].Date
	for _, f := range flows[1:] {
		if f.Date.Before(earliest) {
			earliest = f.Date
		}
	}
	amounts := make([]float64, len(flows))
	years := make([]float64, len(flows))
	for i, f := range flows {
		amounts[i] = f.Amount
		years[i] = float64(f.Date.Sub(earliest)) / date.DaysPerYear
	}

	if rate, ok := xirrNewton(amounts, years); ok {
		return roundRate(rate), true
	}
	if rate, ok := xirrBisection(amounts, years); ok {
		return roundRate(rate), true
	}
	return 0, false
}

// xnpv is the net present value of the flows at the given rate.
func xnpv(rate float64, amounts, years []float64) float64 {
	var npv float64
	for i, amount := range amounts {
		npv += amount / math.Pow(1+rate, years[i])
	}
	return npv
}

// dxnpv is the derivative of xnpv with respect to the rate.
func dxnpv(rate float64, amounts, years []float64) float64 {
	var d float64
	for i, amount := range amounts {
		d -= years[i] * amount / math.Pow(1+rate, years[i]+1)
	}
	return d
}

func xirrNewton(amounts, years []float64) (float64, bool) {
	rate := xirrInitialGuess
	for i := 0; i < xirrMaxIterations; i++ {
		derivative := dxnpv(rate, amounts, years)
		if math.Abs(derivative) < 1e-10 {
			// Stepping off a flat spot beats dividing by almost zero.
			rate += xirrInitialGuess
			continue
		}
		next := rate - xnpv(rate, amounts, years)/derivative
		next = clampRate(next)
		if math.Abs(next-rate) < xirrTolerance {
			if next == xirrMinRate || next == xirrMaxRate {
				// Two consecutive steps pinned at a clamp bound: the true
				// root lies outside the solvable range, not at the bound.
				return 0, false
			}
			return next, true
		}
		rate = next
	}
	return 0, false
}

func xirrBisection(amounts, years []float64) (float64, bool) {
	lo, hi := xirrMinRate, 1.0
	npvLo := xnpv(lo, amounts, years)

	// Expand the upper bracket geometrically until the NPV changes sign.
	for xnpv(hi, amounts, years)*npvLo > 0 {
		if hi >= xirrMaxRate {
			return 0, false
		}
		hi = math.Min(hi*10, xirrMaxRate)
	}

	var mid float64
	for i := 0; i < xirrMaxIterations; i++ {
		mid = (lo + hi) / 2
		npvMid := xnpv(mid, amounts, years)
		if npvMid == 0 || (hi-lo)/2 < xirrTolerance {
			return mid, true
		}
		if npvMid*npvLo < 0 {
			hi = mid
		} else {
			lo = mid
			npvLo = npvMid
		}
	}
	return mid, true
}

func clampRate(rate float64) float64 {
	if rate < xirrMinRate {
		return xirrMinRate
	}
	if rate > xirrMaxRate {
		return xirrMaxRate
	}
	return rate
}

func roundRate(rate float64) float64 {
	return math.Round(rate*1e6) / 1e6
}
