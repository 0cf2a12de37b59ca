package compare

import (
	"fmt"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/money"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents one strategy's simulation with the metrics used
// for comparison
type ComparisonResult struct {
	Strategy    domain.Strategy          `json:"strategy"`
	Description string                   `json:"description"`
	Result      *domain.SimulationResult `json:"-"`

	// Key Metrics
	TotalMonths    domain.PayoffMonths `json:"totalMonths"`
	TotalInterest  decimal.Decimal     `json:"totalInterest"`
	TotalPaid      decimal.Decimal     `json:"totalPaid"`
	FirstPayoff    string              `json:"firstPayoff,omitempty"`
	FirstPayoffIn  domain.PayoffMonths `json:"firstPayoffIn"`
	PaymentOrder   []string            `json:"paymentOrder"`
	CeilingReached bool                `json:"ceilingReached"`

	// Comparison to Base
	InterestDiffFromBase decimal.Decimal `json:"interestDiffFromBase"`
	MonthsDiffFromBase   int             `json:"monthsDiffFromBase"`
}

// ComparisonSet represents a base strategy and its alternatives run against
// the same accounts and budget
type ComparisonSet struct {
	BaseStrategy       domain.Strategy    `json:"baseStrategy"`
	MonthlyBudget      decimal.Decimal    `json:"monthlyBudget"`
	TotalDebt          decimal.Decimal    `json:"totalDebt"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`

	// Best is the cheapest strategy; InterestSaved and MonthsSaved are
	// measured against the most expensive one.
	Best          domain.Strategy `json:"best"`
	InterestSaved decimal.Decimal `json:"interestSaved"`
	MonthsSaved   int             `json:"monthsSaved"`

	Recommendations []string `json:"recommendations"`
	PlanPath        string   `json:"planPath,omitempty"`
}

// All returns the base result followed by the alternatives.
func (cs *ComparisonSet) All() []ComparisonResult {
	all := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		all = append(all, *cs.BaseResult)
	}
	return append(all, cs.AlternativeResults...)
}

// MetricsCalculator extracts key metrics from simulation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one simulation
func (mc *MetricsCalculator) CalculateMetrics(result *domain.SimulationResult) ComparisonResult {
	cr := ComparisonResult{
		Strategy:       result.Strategy,
		Description:    result.Strategy.Description(),
		Result:         result,
		TotalMonths:    result.TotalMonths,
		TotalInterest:  result.TotalInterest,
		TotalPaid:      result.TotalPaid,
		FirstPayoffIn:  domain.PayoffNever,
		CeilingReached: result.CeilingReached,
	}

	for _, acct := range result.InPaymentOrder() {
		cr.PaymentOrder = append(cr.PaymentOrder, acct.Label())
		if acct.MonthsToPayoff.Known() && (!cr.FirstPayoffIn.Known() || acct.MonthsToPayoff < cr.FirstPayoffIn) {
			cr.FirstPayoff = acct.Label()
			cr.FirstPayoffIn = acct.MonthsToPayoff
		}
	}

	return cr
}

// CalculateComparison computes deltas between a strategy and the base
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.InterestDiffFromBase = alt.TotalInterest.Sub(base.TotalInterest)
	if alt.TotalMonths.Known() && base.TotalMonths.Known() {
		alt.MonthsDiffFromBase = int(alt.TotalMonths) - int(base.TotalMonths)
	}
	return alt
}

// cheaper reports whether a costs less than b: less interest, then fewer months.
func cheaper(a, b ComparisonResult) bool {
	if a.CeilingReached != b.CeilingReached {
		return !a.CeilingReached
	}
	if !a.TotalInterest.Equal(b.TotalInterest) {
		return a.TotalInterest.LessThan(b.TotalInterest)
	}
	return a.TotalMonths.Known() && b.TotalMonths.Known() && a.TotalMonths < b.TotalMonths
}

// summarize fills Best, InterestSaved and MonthsSaved.
func summarize(compSet *ComparisonSet) {
	all := compSet.All()
	if len(all) == 0 {
		return
	}

	best, worst := all[0], all[0]
	for _, r := range all[1:] {
		if cheaper(r, best) {
			best = r
		}
		if cheaper(worst, r) {
			worst = r
		}
	}

	compSet.Best = best.Strategy
	compSet.InterestSaved = money.NonNegative(worst.TotalInterest.Sub(best.TotalInterest))
	if best.TotalMonths.Known() && worst.TotalMonths.Known() {
		compSet.MonthsSaved = int(worst.TotalMonths) - int(best.TotalMonths)
	}
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Lowest interest
	lowest := *compSet.BaseResult
	for _, alt := range compSet.AlternativeResults {
		if cheaper(alt, lowest) {
			lowest = alt
		}
	}
	if compSet.InterestSaved.GreaterThan(money.Epsilon) {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Interest: %s saves %s in interest", lowest.Strategy, money.FormatCurrency(compSet.InterestSaved)))
	} else {
		recommendations = append(recommendations, "Equal Interest: every strategy costs the same in interest")
	}

	// Fastest debt-free date
	fastest := *compSet.BaseResult
	for _, alt := range compSet.AlternativeResults {
		if alt.TotalMonths.Known() && (!fastest.TotalMonths.Known() || alt.TotalMonths < fastest.TotalMonths) {
			fastest = alt
		}
	}
	for _, r := range compSet.All() {
		if r.Strategy != fastest.Strategy && fastest.TotalMonths.Known() &&
			(!r.TotalMonths.Known() || r.TotalMonths > fastest.TotalMonths) {
			recommendations = append(recommendations,
				fmt.Sprintf("Fastest Payoff: %s is debt-free in %d months", fastest.Strategy, fastest.TotalMonths))
			break
		}
	}

	// Earliest first win
	quickWin := *compSet.BaseResult
	for _, alt := range compSet.AlternativeResults {
		if alt.FirstPayoffIn.Known() && (!quickWin.FirstPayoffIn.Known() || alt.FirstPayoffIn < quickWin.FirstPayoffIn) {
			quickWin = alt
		}
	}
	if quickWin.Strategy != lowest.Strategy && quickWin.FirstPayoffIn.Known() {
		recommendations = append(recommendations,
			fmt.Sprintf("Quickest Win: %s pays off %s in month %d", quickWin.Strategy, quickWin.FirstPayoff, quickWin.FirstPayoffIn))
	}

	for _, r := range compSet.All() {
		if r.CeilingReached {
			recommendations = append(recommendations,
				fmt.Sprintf("Warning: %s does not finish: %s", r.Strategy, r.Result.Warning))
		}
	}

	return recommendations
}
