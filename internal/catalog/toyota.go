package catalog

import (
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// toyota2024 is the built-in lineup, in display order
var toyota2024 = []domain.VehicleData{
	{ID: "camry-le", Model: "Camry", Trim: "LE", Year: 2024, MSRP: 28400, Image: "/stock_images/2024_toyota_camry_hero.png", Category: domain.CategorySedan, FuelType: domain.FuelGas, MPG: "28/39", MPGCombined: d("32"), Seating: 5, Reliability: d("4.8")},
	{ID: "camry-se", Model: "Camry", Trim: "SE", Year: 2024, MSRP: 30200, Image: "/stock_images/2024_toyota_camry_hero.png", Category: domain.CategorySedan, FuelType: domain.FuelGas, MPG: "28/39", MPGCombined: d("32"), Seating: 5, Reliability: d("4.8")},
	{ID: "camry-xse", Model: "Camry", Trim: "XSE", Year: 2024, MSRP: 32500, Image: "/stock_images/2024_toyota_camry_hero.png", Category: domain.CategorySedan, FuelType: domain.FuelGas, MPG: "28/39", MPGCombined: d("32"), Seating: 5, Reliability: d("4.8")},
	{ID: "camry-hybrid-se", Model: "Camry", Trim: "Hybrid SE", Year: 2024, MSRP: 31900, Image: "/stock_images/2024_toyota_camry_hero.png", Category: domain.CategorySedan, FuelType: domain.FuelHybrid, MPG: "51/53", MPGCombined: d("52"), Seating: 5, Reliability: d("4.9")},
	{ID: "corolla-le", Model: "Corolla", Trim: "LE", Year: 2024, MSRP: 22300, Image: "/stock_images/2024_toyota_corolla__05ea0fdf.jpg", Category: domain.CategorySedan, FuelType: domain.FuelGas, MPG: "30/38", MPGCombined: d("33"), Seating: 5, Reliability: d("4.9")},
	{ID: "corolla-se", Model: "Corolla", Trim: "SE", Year: 2024, MSRP: 24500, Image: "/stock_images/2024_toyota_corolla__05ea0fdf.jpg", Category: domain.CategorySedan, FuelType: domain.FuelGas, MPG: "31/40", MPGCombined: d("34"), Seating: 5, Reliability: d("4.9")},
	{ID: "corolla-hybrid-le", Model: "Corolla", Trim: "Hybrid LE", Year: 2024, MSRP: 25900, Image: "/stock_images/2024_toyota_corolla__05ea0fdf.jpg", Category: domain.CategorySedan, FuelType: domain.FuelHybrid, MPG: "53/52", MPGCombined: d("52"), Seating: 5, Reliability: d("4.9")},
	{ID: "rav4-le", Model: "RAV4", Trim: "LE", Year: 2024, MSRP: 30500, Image: "/stock_images/2024_toyota_rav4_suv_c2a1cabc.jpg", Category: domain.CategorySUV, FuelType: domain.FuelGas, MPG: "27/35", MPGCombined: d("30"), Seating: 5, Reliability: d("4.7")},
	{ID: "rav4-xle", Model: "RAV4", Trim: "XLE", Year: 2024, MSRP: 33200, Image: "/stock_images/2024_toyota_rav4_suv_c2a1cabc.jpg", Category: domain.CategorySUV, FuelType: domain.FuelGas, MPG: "27/35", MPGCombined: d("30"), Seating: 5, Reliability: d("4.7")},
	{ID: "rav4-xle-hybrid", Model: "RAV4", Trim: "XLE Hybrid", Year: 2024, MSRP: 35800, Image: "/stock_images/2024_toyota_rav4_suv_c2a1cabc.jpg", Category: domain.CategorySUV, FuelType: domain.FuelHybrid, MPG: "41/38", MPGCombined: d("40"), Seating: 5, Reliability: d("4.7")},
	{ID: "rav4-prime-se", Model: "RAV4 Prime", Trim: "SE", Year: 2024, MSRP: 44500, Image: "/stock_images/2024_toyota_rav4_suv_c2a1cabc.jpg", Category: domain.CategorySUV, FuelType: domain.FuelPluginHybrid, MPG: "94 MPGe", MPGCombined: d("38"), Seating: 5, Reliability: d("4.6")},
	{ID: "highlander-le", Model: "Highlander", Trim: "LE", Year: 2024, MSRP: 40500, Image: "/stock_images/2024_toyota_highland_0eafcb92.jpg", Category: domain.CategorySUV, FuelType: domain.FuelGas, MPG: "21/29", MPGCombined: d("24"), Seating: 8, Reliability: d("4.6")},
	{ID: "highlander-xle", Model: "Highlander", Trim: "XLE", Year: 2024, MSRP: 44200, Image: "/stock_images/2024_toyota_highland_0eafcb92.jpg", Category: domain.CategorySUV, FuelType: domain.FuelGas, MPG: "21/29", MPGCombined: d("24"), Seating: 8, Reliability: d("4.6")},
	{ID: "highlander-limited", Model: "Highlander", Trim: "Limited", Year: 2024, MSRP: 48500, Image: "/stock_images/2024_toyota_highland_0eafcb92.jpg", Category: domain.CategorySUV, FuelType: domain.FuelGas, MPG: "21/29", MPGCombined: d("24"), Seating: 8, Reliability: d("4.6")},
	{ID: "highlander-hybrid-xle", Model: "Highlander", Trim: "Hybrid XLE", Year: 2024, MSRP: 47500, Image: "/stock_images/2024_toyota_highland_0eafcb92.jpg", Category: domain.CategorySUV, FuelType: domain.FuelHybrid, MPG: "36/35", MPGCombined: d("36"), Seating: 8, Reliability: d("4.7")},
	{ID: "tacoma-sr5", Model: "Tacoma", Trim: "SR5", Year: 2024, MSRP: 36500, Image: "/stock_images/2024_toyota_tacoma_p_e535598f.jpg", Category: domain.CategoryTruck, FuelType: domain.FuelGas, MPG: "19/24", MPGCombined: d("21"), Seating: 5, Reliability: d("4.5")},
	{ID: "tacoma-trd-sport", Model: "Tacoma", Trim: "TRD Sport", Year: 2024, MSRP: 42000, Image: "/stock_images/2024_toyota_tacoma_p_e535598f.jpg", Category: domain.CategoryTruck, FuelType: domain.FuelGas, MPG: "18/22", MPGCombined: d("20"), Seating: 5, Reliability: d("4.5")},
	{ID: "tacoma-trd-pro", Model: "Tacoma", Trim: "TRD Pro", Year: 2024, MSRP: 52500, Image: "/stock_images/2024_toyota_tacoma_p_e535598f.jpg", Category: domain.CategoryTruck, FuelType: domain.FuelGas, MPG: "17/20", MPGCombined: d("18"), Seating: 5, Reliability: d("4.4")},
	{ID: "4runner-sr5", Model: "4Runner", Trim: "SR5", Year: 2024, MSRP: 45000, Image: "/stock_images/2024_toyota_rav4_suv_c2a1cabc.jpg", Category: domain.CategorySUV, FuelType: domain.FuelGas, MPG: "16/19", MPGCombined: d("17"), Seating: 7, Reliability: d("4.7")},
	{ID: "4runner-trd-off-road", Model: "4Runner", Trim: "TRD Off-Road", Year: 2024, MSRP: 47800, Image: "/stock_images/2024_toyota_rav4_suv_c2a1cabc.jpg", Category: domain.CategorySUV, FuelType: domain.FuelGas, MPG: "16/19", MPGCombined: d("17"), Seating: 7, Reliability: d("4.6")},
	{ID: "4runner-limited", Model: "4Runner", Trim: "Limited", Year: 2024, MSRP: 49500, Image: "/stock_images/2024_toyota_rav4_suv_c2a1cabc.jpg", Category: domain.CategorySUV, FuelType: domain.FuelGas, MPG: "16/19", MPGCombined: d("17"), Seating: 7, Reliability: d("4.7")},
	{ID: "4runner-trd-pro", Model: "4Runner", Trim: "TRD Pro", Year: 2024, MSRP: 55000, Image: "/stock_images/2024_toyota_rav4_suv_c2a1cabc.jpg", Category: domain.CategorySUV, FuelType: domain.FuelGas, MPG: "16/19", MPGCombined: d("17"), Seating: 7, Reliability: d("4.6")},
}
