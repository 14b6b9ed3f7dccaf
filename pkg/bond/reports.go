package bond

// Report sweeps. These are fixed parameter sweeps over PresentValue and the
// risk measures, returned as rows for callers to format.

// sensitivityStep is the yield shift between sensitivity rows (±0.5%).
const sensitivityStep = 0.005

// scenarioDeltas are the yield shifts of the scenario table.
var scenarioDeltas = []float64{-0.02, -0.01, 0.0, 0.01, 0.02}

// comparisonFrequencies are the payment frequencies compared side by side.
var comparisonFrequencies = []int{1, 2, 4}

// SensitivityRow is one point of the price sensitivity sweep.
type SensitivityRow struct {
	Yield float64 `json:"yield"`
	Price float64 `json:"price"`
}

// PriceSensitivity prices the bond at the required yield shifted by
// -1.0% .. +1.0% in 0.5% steps.
func (v *Valuation) PriceSensitivity() []SensitivityRow {
	rows := make([]SensitivityRow, 0, 5)
	for i := -2; i <= 2; i++ {
		y := v.RequiredYield + float64(i)*sensitivityStep
		rows = append(rows, SensitivityRow{Yield: y, Price: v.Terms.PresentValue(y)})
	}
	return rows
}

// ScenarioRow holds the full set of measures at one shifted yield.
type ScenarioRow struct {
	YieldDelta       float64 `json:"yield_delta"`
	Yield            float64 `json:"yield"`
	Price            float64 `json:"price"`
	MacaulayDuration float64 `json:"macaulay_duration"`
	ModifiedDuration float64 `json:"modified_duration"`
	Convexity        float64 `json:"convexity"`
}

// ScenarioAnalysis revalues the bond at the required yield shifted by
// ±2% and ±1%, recomputing the risk measures at each shifted yield.
func (v *Valuation) ScenarioAnalysis() []ScenarioRow {
	rows := make([]ScenarioRow, 0, len(scenarioDeltas))
	for _, delta := range scenarioDeltas {
		shifted := Valuation{Terms: v.Terms, RequiredYield: v.RequiredYield + delta}
		rows = append(rows, ScenarioRow{
			YieldDelta:       delta,
			Yield:            shifted.RequiredYield,
			Price:            shifted.PresentValue(),
			MacaulayDuration: shifted.MacaulayDuration(),
			ModifiedDuration: shifted.ModifiedDuration(),
			Convexity:        shifted.Convexity(),
		})
	}
	return rows
}

// FrequencyRow compares the bond under an alternative payment frequency.
type FrequencyRow struct {
	Frequency        int     `json:"frequency"`
	Label            string  `json:"label"`
	Price            float64 `json:"price"`
	MacaulayDuration float64 `json:"macaulay_duration"`
	ModifiedDuration float64 `json:"modified_duration"`
	Convexity        float64 `json:"convexity"`
}

// FrequencyComparison revalues the bond as if it paid annually, semi-annually
// and quarterly, holding the required yield and market price fixed.
func (v *Valuation) FrequencyComparison() []FrequencyRow {
	rows := make([]FrequencyRow, 0, len(comparisonFrequencies))
	for _, freq := range comparisonFrequencies {
		terms := v.Terms
		terms.PaymentFrequency = freq
		alt := Valuation{Terms: terms, RequiredYield: v.RequiredYield}
		rows = append(rows, FrequencyRow{
			Frequency:        freq,
			Label:            frequencyLabel(freq),
			Price:            alt.PresentValue(),
			MacaulayDuration: alt.MacaulayDuration(),
			ModifiedDuration: alt.ModifiedDuration(),
			Convexity:        alt.Convexity(),
		})
	}
	return rows
}

func frequencyLabel(freq int) string {
	switch freq {
	case 1:
		return "Annual"
	case 2:
		return "Semi-Annual"
	case 4:
		return "Quarterly"
	default:
		return "Custom"
	}
}

// AmortizationRow is one scheduled payment.
type AmortizationRow struct {
	Period int `json:"period"`
	// PaymentTime is the payment date in years from now.
	PaymentTime float64 `json:"payment_time"`
	Payment     float64 `json:"payment"`
}

// AmortizationSchedule lists every scheduled payment. All periods pay the
// coupon; the final period additionally repays the face value.
func (t Terms) AmortizationSchedule() []AmortizationRow {
	coupon := t.Coupon()
	periods := t.Periods()

	rows := make([]AmortizationRow, 0, periods)
	for n := 1; n <= periods; n++ {
		payment := coupon
		if n == periods {
			payment += t.FaceValue
		}
		rows = append(rows, AmortizationRow{
			Period:      n,
			PaymentTime: float64(n) / float64(t.PaymentFrequency),
			Payment:     payment,
		})
	}
	return rows
}
