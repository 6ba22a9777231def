package vanslyke

// Formula describes one catalogue entry: what it produces, how, and from what.
type Formula struct {
	Output     Name
	Expression string
	Requires   []Name
	Guard      string
}

var catalogue = []Formula{
	{FDBFromCompositionOut, "fat_cheese / total_solids_cheese * 100",
		[]Name{FatCheese, TotalSolidsCheese}, "total_solids_cheese != 0"},
	{CaseinMilk, "0.82 * protein_milk",
		[]Name{ProteinMilk}, ""},
	{TotalSolidsCheese, "100 - moisture_cheese",
		[]Name{MoistureCheese}, ""},
	{RS, "1 + (TS - fat - casein) / (fat + casein)",
		[]Name{FatCheese, CaseinCheese, TotalSolidsCheese}, "fat_cheese + casein_cheese != 0"},
	{RFFromPoundsOut, "(fat_cheese * lbs_cheese) / (fat_milk * lbs_milk)",
		[]Name{FatCheese, LbsCheese, FatMilk, LbsMilk}, "fat_milk * lbs_milk != 0"},
	{CaseinCheese, "RC * (casein_milk * lbs_milk / 100) / lbs_cheese * 100",
		[]Name{RC, CaseinMilk, LbsMilk, LbsCheese}, "lbs_cheese != 0"},
	{YieldPredicted, "((RF * fat_milk) + (RC * casein_milk)) * RS / (TS / 100)",
		[]Name{RF, RC, RS, FatMilk, CaseinMilk, TotalSolidsCheese}, "total_solids_cheese != 0"},
	{LbsCheesePredicted, "lbs_milk * yield_predicted / 100",
		[]Name{LbsMilk, YieldPredicted}, ""},
	{YieldActual, "lbs_cheese / lbs_milk * 100",
		[]Name{LbsCheese, LbsMilk}, "lbs_milk != 0"},
	{RSFromActualYieldOut, "yield_actual * (TS / 100) / ((RF * fat_milk) + (RC * casein_milk))",
		[]Name{YieldActual, RF, RC, FatMilk, CaseinMilk, TotalSolidsCheese}, "RF * fat_milk + RC * casein_milk != 0"},
	{RFFromFDBTargetOut, "y = fdb_target / 100 / RS; RF = y * RC * casein_milk / (fat_milk * (1 - y))",
		[]Name{FDBTarget, RS, RC, FatMilk, CaseinMilk}, "RS != 0, fat_milk != 0, 0 < y < 1"},
	{CaseinMilkRequired, "y = fdb_target / 100 / RS; C = RF * fat_milk * (1 - y) / (y * RC)",
		[]Name{FDBTarget, RS, RF, RC, FatMilk}, "RC != 0, RS != 0, 0 < y < 1"},
	{CaseinFatRatioRequired, "(RF / RC) * (1 / (fdb_target / 100 * RS) - 1)",
		[]Name{FDBTarget, RF, RC, RS}, "RC != 0, RS != 0, fdb_target > 0"},
	{FDBFromRecoveriesOut, "(RF * fat_milk) / ((RF * fat_milk) + (RC * casein_milk)) * RS * 100",
		[]Name{RF, RC, RS, FatMilk, CaseinMilk}, "RF * fat_milk + RC * casein_milk != 0"},
}

// Catalogue returns the formula registry in its fixed order.
func Catalogue() []Formula {
	out := make([]Formula, len(catalogue))
	for i, f := range catalogue {
		f.Requires = append([]Name(nil), f.Requires...)
		out[i] = f
	}
	return out
}
