package domain

import "github.com/shopspring/decimal"

// TotalMonthlyCost is the per-month cost of owning a financed vehicle
type TotalMonthlyCost struct {
	Payment      decimal.Decimal `json:"payment"`
	Insurance    decimal.Decimal `json:"insurance"`
	Fuel         decimal.Decimal `json:"fuel"`
	Maintenance  decimal.Decimal `json:"maintenance"`
	TaxesAndFees decimal.Decimal `json:"taxesAndFees"`
	Total        decimal.Decimal `json:"total"`
}

// BreakdownItem is one slice of the monthly cost chart
type BreakdownItem struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// AffordabilityResult answers "can I afford this vehicle?"
type AffordabilityResult struct {
	Score             int             `json:"score"`
	MonthlyNetIncome  decimal.Decimal `json:"monthlyNetIncome"`
	TotalMonthlyCost  decimal.Decimal `json:"totalMonthlyCost"`
	Breakdown         []BreakdownItem `json:"breakdown"`
	BudgetUtilization decimal.Decimal `json:"budgetUtilization"`
	APR               decimal.Decimal `json:"apr"`
	CanAfford         bool            `json:"canAfford"`
	Recommendation    string          `json:"recommendation"`
	MaxAffordable     decimal.Decimal `json:"maxAffordablePrice"`
}

// VehicleMatch scores one catalog vehicle against a shopper
type VehicleMatch struct {
	Vehicle            VehicleData      `json:"vehicle"`
	MatchPercentage    int              `json:"matchPercentage"`
	MonthlyPayment     decimal.Decimal  `json:"monthlyPayment"`
	TotalMonthlyCost   TotalMonthlyCost `json:"totalMonthlyCost"`
	AffordabilityScore int              `json:"affordabilityScore"`
	SalaryFit          int              `json:"salaryFit"`
	ReliabilityScore   int              `json:"reliabilityScore"`
	TermMatch          int              `json:"termMatch"`
}

// TCOBreakdown itemizes total cost of ownership over the term
type TCOBreakdown struct {
	Payments     decimal.Decimal `json:"payments"`
	Insurance    decimal.Decimal `json:"insurance"`
	Fuel         decimal.Decimal `json:"fuel"`
	Maintenance  decimal.Decimal `json:"maintenance"`
	TaxesAndFees decimal.Decimal `json:"taxesAndFees"`
	Depreciation decimal.Decimal `json:"depreciation"`
}

// TCOResult is the net cost of owning a vehicle for a financing term
type TCOResult struct {
	TotalPaid         decimal.Decimal `json:"totalPaid"`
	Depreciation      decimal.Decimal `json:"depreciation"`
	NetCost           decimal.Decimal `json:"netCost"`
	MonthlyEquivalent decimal.Decimal `json:"monthlyEquivalent"`
	ResaleValue       decimal.Decimal `json:"resaleValue"`
	Breakdown         TCOBreakdown    `json:"breakdown"`
}

// Buy-vs-lease recommendations
const (
	ChoiceBuy   = "buy"
	ChoiceLease = "lease"
)

// BuyVsLeaseResult compares financing a purchase against leasing
type BuyVsLeaseResult struct {
	BuyMonthlyPayment decimal.Decimal `json:"buyMonthlyPayment"`
	TotalBuyCost      decimal.Decimal `json:"totalBuyCost"`
	ResidualValue     decimal.Decimal `json:"residualValue"`
	NetBuyCost        decimal.Decimal `json:"netBuyCost"`
	TotalLeaseCost    decimal.Decimal `json:"totalLeaseCost"`
	Recommendation    string          `json:"recommendation"`
	Savings           decimal.Decimal `json:"savings"`
}

// AmortizationEntry is one month of a loan schedule
type AmortizationEntry struct {
	Period           int             `json:"period"`
	Payment          decimal.Decimal `json:"payment"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}
