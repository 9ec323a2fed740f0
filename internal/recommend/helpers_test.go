package recommend

import (
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func camryHybridMatch() domain.VehicleMatch {
	return domain.VehicleMatch{
		Vehicle: domain.VehicleData{
			ID: "camry-hybrid-se", Model: "Camry", Trim: "Hybrid SE", Year: 2024, MSRP: 31900,
			Category: domain.CategorySedan, FuelType: domain.FuelHybrid, MPG: "51/53",
			MPGCombined: dec("52"), Seating: 5, Reliability: dec("4.9"),
		},
		MatchPercentage:    97,
		MonthlyPayment:     dec("654.69"),
		TotalMonthlyCost:   domain.TotalMonthlyCost{Payment: dec("654.69"), Total: dec("987")},
		AffordabilityScore: 17,
		SalaryFit:          95,
		ReliabilityScore:   98,
		TermMatch:          90,
	}
}

func rav4Match() domain.VehicleMatch {
	return domain.VehicleMatch{
		Vehicle: domain.VehicleData{
			ID: "rav4-le", Model: "RAV4", Trim: "LE", Year: 2024, MSRP: 30500,
			Category: domain.CategorySUV, FuelType: domain.FuelGas, MPG: "27/35",
			MPGCombined: dec("30"), Seating: 5, Reliability: dec("4.7"),
		},
		MatchPercentage:    93,
		MonthlyPayment:     dec("625.94"),
		TotalMonthlyCost:   domain.TotalMonthlyCost{Payment: dec("625.94"), Total: dec("940")},
		AffordabilityScore: 85,
		SalaryFit:          95,
		ReliabilityScore:   94,
		TermMatch:          95,
	}
}

func scenarioSummary() UserSummary {
	return UserSummary{
		AnnualIncome: dec("75000"),
		CreditScore:  720,
		LeaseTerm:    48,
		BudgetMin:    dec("25000"),
		BudgetMax:    dec("40000"),
	}
}
