package stockfolio

// ModifiedDietz approximates the money-weighted return of a portfolio over
// a period, weighting each interior cash flow by the fraction of the
// period it was at work: weight = (totalDays − daysSinceStart)/totalDays.
//
// Flows follow the engine-wide sign convention (investments negative), so
// they enter the formula negated as contributions. The result is undefined
// (false) for an empty period or a non-positive denominator.
func ModifiedDietz(startValue, endValue float64, from, to Date, flows []CashFlow) (float64, bool) {
	totalDays := to.Sub(from)
	if totalDays <= 0 {
		return 0, false
	}

	var netFlow, weightedFlow float64
	for _, f := range flows {
		contribution := -f.Amount
		weight := float64(totalDays-f.Date.Sub(from)) / float64(totalDays)
		netFlow += contribution
		weightedFlow += contribution * weight
	}

	denominator := startValue + weightedFlow
	if denominator <= 0 {
		return 0, false
	}
	return (endValue - startValue - netFlow) / denominator, true
}

// PeriodSnapshot captures the portfolio value just before and just after
// one external cash flow, splitting the period into sub-periods whose
// growth is unaffected by the flow itself.
type PeriodSnapshot struct {
	Before float64 // value immediately before the flow
	After  float64 // value immediately after the flow
}

// TimeWeightedReturn chains sub-period growth factors, removing the
// distortion of cash-flow timing: each snapshot contributes
// before/runningStart, then the running start moves to the post-flow
// value, and the final leg contributes endValue over the last running
// start. The result is undefined (false) when no leg could be compounded.
func TimeWeightedReturn(startValue, endValue float64, periods []PeriodSnapshot) (float64, bool) {
	factor := 1.0
	runningStart := startValue
	compounded := false

	for _, p := range periods {
		if runningStart > 0 {
			factor *= p.Before / runningStart
			compounded = true
		}
		runningStart = p.After
	}
	if runningStart > 0 {
		factor *= endValue / runningStart
		compounded = true
	}

	if !compounded {
		return 0, false
	}
	return factor - 1, true
}
