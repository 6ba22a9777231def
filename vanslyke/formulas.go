package vanslyke

import "github.com/warp/vanslyke/generic"

// =============================================================================
// FORMULAS - Pure functions, Unknown on missing input or domain violation
// =============================================================================
//
// Percentages are 0-100. Every function returns generic.Unknown instead of
// dividing by zero or leaving the physical domain of the equation.

// CaseinToProtein is the casein share of true milk protein used when milk
// casein was not measured.
const CaseinToProtein = 0.82

// FDBFromComposition is fat in dry basis from cheese composition.
func FDBFromComposition(fatCheese, tsCheese generic.Scalar) generic.Scalar {
	v, ok := generic.Values(fatCheese, tsCheese)
	if !ok || v[1] == 0 {
		return generic.Unknown
	}
	return generic.Of(v[0] / v[1] * 100)
}

// CaseinFromProtein estimates milk casein from milk protein.
func CaseinFromProtein(proteinMilk generic.Scalar) generic.Scalar {
	p, ok := proteinMilk.Get()
	if !ok {
		return generic.Unknown
	}
	return generic.Of(CaseinToProtein * p)
}

// TotalSolidsFromMoisture is 100 - moisture.
func TotalSolidsFromMoisture(moistureCheese generic.Scalar) generic.Scalar {
	m, ok := moistureCheese.Get()
	if !ok {
		return generic.Unknown
	}
	return generic.Of(100 - m)
}

// RSFromComposition is the serum-solids factor from cheese composition.
func RSFromComposition(fatCheese, caseinCheese, tsCheese generic.Scalar) generic.Scalar {
	v, ok := generic.Values(fatCheese, caseinCheese, tsCheese)
	if !ok {
		return generic.Unknown
	}
	fat, casein, ts := v[0], v[1], v[2]
	if fat+casein == 0 {
		return generic.Unknown
	}
	return generic.Of(1 + (ts-fat-casein)/(fat+casein))
}

// RFFromPounds is the fat recovery from a fat mass balance.
func RFFromPounds(fatCheese, lbsCheese, fatMilk, lbsMilk generic.Scalar) generic.Scalar {
	v, ok := generic.Values(fatCheese, lbsCheese, fatMilk, lbsMilk)
	if !ok {
		return generic.Unknown
	}
	denom := v[2] * v[3]
	if denom == 0 {
		return generic.Unknown
	}
	return generic.Of(v[0] * v[1] / denom)
}

// CheeseCaseinFromMilk is the casein percent of the cheese implied by the
// casein recovered from the milk.
func CheeseCaseinFromMilk(rc, caseinMilk, lbsMilk, lbsCheese generic.Scalar) generic.Scalar {
	v, ok := generic.Values(rc, caseinMilk, lbsMilk, lbsCheese)
	if !ok || v[3] == 0 {
		return generic.Unknown
	}
	caseinRec, casein, milk, cheese := v[0], v[1], v[2], v[3]
	return generic.Of(caseinRec * (casein * milk / 100) / cheese * 100)
}

// PredictedYield is the Van Slyke yield in percent.
func PredictedYield(rf, rc, rs, fatMilk, caseinMilk, tsCheese generic.Scalar) generic.Scalar {
	v, ok := generic.Values(rf, rc, rs, fatMilk, caseinMilk, tsCheese)
	if !ok {
		return generic.Unknown
	}
	fatRec, caseinRec, serum, fat, casein, ts := v[0], v[1], v[2], v[3], v[4], v[5]
	if ts == 0 {
		return generic.Unknown
	}
	return generic.Of((fatRec*fat + caseinRec*casein) * serum / (ts / 100))
}

// PredictedCheesePounds converts a yield percent into pounds of cheese.
func PredictedCheesePounds(lbsMilk, yieldPct generic.Scalar) generic.Scalar {
	v, ok := generic.Values(lbsMilk, yieldPct)
	if !ok {
		return generic.Unknown
	}
	return generic.Of(v[0] * v[1] / 100)
}

// ActualYield is the yield percent from weighed pounds.
func ActualYield(lbsCheese, lbsMilk generic.Scalar) generic.Scalar {
	v, ok := generic.Values(lbsCheese, lbsMilk)
	if !ok || v[1] == 0 {
		return generic.Unknown
	}
	return generic.Of(v[0] / v[1] * 100)
}

// RSFromActualYield inverts PredictedYield for RS.
func RSFromActualYield(yieldPct, rf, rc, fatMilk, caseinMilk, tsCheese generic.Scalar) generic.Scalar {
	v, ok := generic.Values(yieldPct, rf, rc, fatMilk, caseinMilk, tsCheese)
	if !ok {
		return generic.Unknown
	}
	yield, fatRec, caseinRec, fat, casein, ts := v[0], v[1], v[2], v[3], v[4], v[5]
	denom := fatRec*fat + caseinRec*casein
	if denom == 0 {
		return generic.Unknown
	}
	return generic.Of(yield * (ts / 100) / denom)
}

// fdbRatio is y = FDB/100/RS, the fat share of the recovered fat and casein.
// It is only usable strictly inside (0, 1).
func fdbRatio(fdbPct, rs float64) (float64, bool) {
	if rs == 0 {
		return 0, false
	}
	y := fdbPct / (100 * rs)
	if y <= 0 || y >= 1 {
		return 0, false
	}
	return y, true
}

// RFFromFDBTarget solves the FDB identity for RF.
func RFFromFDBTarget(fdbPct, rs, rc, fatMilk, caseinMilk generic.Scalar) generic.Scalar {
	v, ok := generic.Values(fdbPct, rs, rc, fatMilk, caseinMilk)
	if !ok {
		return generic.Unknown
	}
	fdb, serum, caseinRec, fat, casein := v[0], v[1], v[2], v[3], v[4]
	if fat == 0 {
		return generic.Unknown
	}
	y, ok := fdbRatio(fdb, serum)
	if !ok {
		return generic.Unknown
	}
	return generic.Of(y * caseinRec * casein / (fat * (1 - y)))
}

// RequiredMilkCasein solves the FDB identity for milk casein: the casein
// percent the milk needs, at fixed milk fat, to reach the target FDB.
func RequiredMilkCasein(fdbPct, rs, rf, rc, fatMilk generic.Scalar) generic.Scalar {
	v, ok := generic.Values(fdbPct, rs, rf, rc, fatMilk)
	if !ok {
		return generic.Unknown
	}
	fdb, serum, fatRec, caseinRec, fat := v[0], v[1], v[2], v[3], v[4]
	if caseinRec == 0 {
		return generic.Unknown
	}
	y, ok := fdbRatio(fdb, serum)
	if !ok {
		return generic.Unknown
	}
	return generic.Of(fatRec * fat * (1 - y) / (y * caseinRec))
}

// RequiredCaseinFatRatio is the milk casein:fat ratio for a target FDB.
func RequiredCaseinFatRatio(fdbPct, rf, rc, rs generic.Scalar) generic.Scalar {
	v, ok := generic.Values(fdbPct, rf, rc, rs)
	if !ok {
		return generic.Unknown
	}
	fdb, fatRec, caseinRec, serum := v[0]/100, v[1], v[2], v[3]
	if caseinRec == 0 || serum == 0 || fdb <= 0 {
		return generic.Unknown
	}
	return generic.Of((fatRec / caseinRec) * (1/(fdb*serum) - 1))
}

// FDBFromRecoveries is the FDB percent implied by milk composition and
// recoveries: RF*F / (RF*F + RC*C) * RS * 100. RFFromFDBTarget inverts it.
func FDBFromRecoveries(rf, rc, rs, fatMilk, caseinMilk generic.Scalar) generic.Scalar {
	v, ok := generic.Values(rf, rc, rs, fatMilk, caseinMilk)
	if !ok {
		return generic.Unknown
	}
	fatRec, caseinRec, serum, fat, casein := v[0], v[1], v[2], v[3], v[4]
	recovered := fatRec*fat + caseinRec*casein
	if recovered == 0 {
		return generic.Unknown
	}
	return generic.Of(fatRec * fat / recovered * serum * 100)
}
