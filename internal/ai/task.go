package ai

// TaskKind is the logical purpose of one AI call. It doubles as the billing
// category key in the ledger.
type TaskKind string

const (
	TaskTaxRateLookup    TaskKind = "tax_rate_lookup"
	TaskPriceTagAnalysis TaskKind = "price_tag_analysis"
	TaskPriceGuess       TaskKind = "price_guess"
	TaskAdditiveAnalysis TaskKind = "additive_analysis"
)

// AllTaskKinds lists every supported kind, in display order.
func AllTaskKinds() []TaskKind {
	return []TaskKind{
		TaskTaxRateLookup,
		TaskPriceTagAnalysis,
		TaskPriceGuess,
		TaskAdditiveAnalysis,
	}
}

// Valid reports whether k names a known task kind.
func (k TaskKind) Valid() bool {
	switch k {
	case TaskTaxRateLookup, TaskPriceTagAnalysis, TaskPriceGuess, TaskAdditiveAnalysis:
		return true
	}
	return false
}

// Task result shapes. A nil pointer for the primary field is a meaningful
// answer ("the model determined this is indeterminate"), not a decode failure.

// TaxRateResult is the decoded answer of a tax-rate lookup.
type TaxRateResult struct {
	TaxRate *float64 `json:"taxRate"`
}

// PriceTagResult is the decoded answer of a price-tag image analysis.
type PriceTagResult struct {
	Name           string   `json:"name"`
	Price          *float64 `json:"price"`
	TaxRate        *float64 `json:"taxRate"`
	TaxDescription *string  `json:"taxDescription"`
	Ingredients    *string  `json:"ingredients"`
}

// PriceGuessResult is the decoded answer of a price estimation.
type PriceGuessResult struct {
	EstimatedPrice *float64 `json:"estimatedPrice"`
	SourceURL      *string  `json:"sourceURL"`
}

// Additive is one ingredient entry in an additive analysis.
type Additive struct {
	Name        string `json:"name"`
	RiskLevel   string `json:"riskLevel,omitempty"`
	Description string `json:"description"`
}

// AdditiveResult is the decoded answer of an additive analysis.
type AdditiveResult struct {
	RiskyAdditives []Additive `json:"riskyAdditives"`
	SafeAdditives  []Additive `json:"safeAdditives"`
}
