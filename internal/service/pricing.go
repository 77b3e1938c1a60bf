package service

import (
	"github.com/shopspring/decimal"

	models "github.com/tayotravel/tourbook/internal"
)

// PartyTotal computes the charge for a party against a package's tiered
// per-person prices: adults*adultPrice + children*childPrice +
// infants*infantPrice, exact to the currency's natural precision.
func PartyTotal(adults, children, infants int, pkg *models.TourPackage) decimal.Decimal {
	total := pkg.AdultPrice.Mul(decimal.NewFromInt(int64(adults)))
	total = total.Add(pkg.ChildPrice.Mul(decimal.NewFromInt(int64(children))))
	total = total.Add(pkg.InfantPrice.Mul(decimal.NewFromInt(int64(infants))))
	return total
}
