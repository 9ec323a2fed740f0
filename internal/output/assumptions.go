package output

// DefaultAssumptions lists the modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Net pay: 2024 federal single-filer brackets plus 7.65% FICA, no state tax",
	"Ranking assumes 10% down, financed over the shopper's lease term",
	"APR follows the credit tier, from 4.5% at 720+ to 15.9% below 580",
	"Fuel at $3.50 per gallon and 12,000 miles a year unless stated",
	"Resale uses a 7-year retention curve adjusted by depreciation factors",
}
