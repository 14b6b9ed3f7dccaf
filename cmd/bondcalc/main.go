// Command bondcalc is an interactive bond analyzer. It reads the six bond
// parameters from standard input in fixed order and prints the full set of
// valuation reports.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/aristath/bond-desk/pkg/bond"
)

func main() {
	in := bufio.NewReader(os.Stdin)

	faceValue, err := promptFloat(in, "Enter Face Value (e.g. 1000): ")
	exitOn(err)
	couponRate, err := promptFloat(in, "Enter Coupon Rate (e.g. 0.05 for 5%): ")
	exitOn(err)
	marketPrice, err := promptFloat(in, "Enter Market Price (e.g. 950): ")
	exitOn(err)
	remainingYears, err := promptInt(in, "Enter Remaining Maturity in Years (e.g. 8): ")
	exitOn(err)
	paymentFrequency, err := promptInt(in, "Enter Payment Frequency (1 for annual, 2 for semi-annual): ")
	exitOn(err)
	requiredYield, err := promptFloat(in, "Enter Required Yield (e.g. 0.06 for 6%, or -1 if you want it to be calculated based on price): ")
	exitOn(err)

	terms := bond.Terms{
		FaceValue:        faceValue,
		CouponRate:       couponRate,
		MarketPrice:      marketPrice,
		RemainingYears:   remainingYears,
		PaymentFrequency: paymentFrequency,
	}
	if err := terms.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	var valuation *bond.Valuation
	if requiredYield == bond.UnsetYield {
		fmt.Println("Calculating required yield (YTM) based on the market price...")

		v, res, err := bond.NewValuationFromPrice(terms, bond.DefaultTolerance, bond.DefaultMaxIterations)
		exitOn(err)
		if !res.Converged {
			fmt.Printf("Warning: YTM solve did not converge after %d iterations, using best estimate\n", res.Iterations)
		}
		valuation = v
	} else {
		v, err := bond.NewValuation(terms, requiredYield)
		exitOn(err)
		valuation = v
	}

	printAnalysis(terms, valuation)
}

func printAnalysis(terms bond.Terms, v *bond.Valuation) {
	ytm := terms.YTM()

	fmt.Println("\nBond Analysis:")
	fmt.Printf("Present Value (Price): %g\n", v.PresentValue())
	fmt.Printf("Yield to Maturity (YTM): %.4f\n", ytm.Yield)
	fmt.Printf("Macaulay Duration: %g\n", v.MacaulayDuration())
	fmt.Printf("Modified Duration: %g\n", v.ModifiedDuration())
	fmt.Printf("Convexity: %g\n", v.Convexity())
	fmt.Printf("Current Yield: %.4f\n", v.CurrentYield())

	fmt.Println("Price Sensitivity Analysis:")
	for _, row := range v.PriceSensitivity() {
		fmt.Printf("Yield: %.4f | Price: %g\n", row.Yield, row.Price)
	}

	fmt.Printf("Break-Even Yield: %.4f\n", terms.BreakEvenYield(terms.MarketPrice))

	fmt.Println("Scenario Analysis:")
	for _, row := range v.ScenarioAnalysis() {
		fmt.Printf("Yield: %.4f\n", row.Yield)
		fmt.Printf("Price: %g\n", row.Price)
		fmt.Printf("Macaulay Duration: %g\n", row.MacaulayDuration)
		fmt.Printf("Modified Duration: %g\n", row.ModifiedDuration)
		fmt.Printf("Convexity: %g\n", row.Convexity)
		fmt.Println()
	}

	fmt.Println("Frequency Analysis:")
	for _, row := range v.FrequencyComparison() {
		fmt.Printf("Payment Frequency: %s\n", row.Label)
		fmt.Printf("Price: %g\n", row.Price)
		fmt.Printf("Macaulay Duration: %g\n", row.MacaulayDuration)
		fmt.Printf("Modified Duration: %g\n", row.ModifiedDuration)
		fmt.Printf("Convexity: %g\n", row.Convexity)
		fmt.Println()
	}

	fmt.Println("Amortization Schedule:")
	for _, row := range terms.AmortizationSchedule() {
		fmt.Printf("Period: %d | Payment Time: %g | Payment: %g\n", row.Period, row.PaymentTime, row.Payment)
	}
}

func promptFloat(in *bufio.Reader, prompt string) (float64, error) {
	fmt.Print(prompt)
	var value float64
	if _, err := fmt.Fscan(in, &value); err != nil {
		return 0, fmt.Errorf("invalid numeric input: %w", err)
	}
	return value, nil
}

func promptInt(in *bufio.Reader, prompt string) (int, error) {
	fmt.Print(prompt)
	var value int
	if _, err := fmt.Fscan(in, &value); err != nil {
		return 0, fmt.Errorf("invalid integer input: %w", err)
	}
	return value, nil
}

func exitOn(err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
