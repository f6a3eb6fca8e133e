package services

import (
	"errors"
	"math"
	"strings"
)

// Premium loadings from the published rate card. The age loading starts at
// the minimum insurable age so an 18-year-old pays no age surcharge.
const (
	DefaultBaseRate   = 100.0
	AgeLoadingPerYear = 2.5
	CoverageDivisor   = 2000.0
	MaleSurcharge     = 20.0
	SmokerSurcharge   = 100.0
	MinQuoteAge       = 18
	MaxQuoteAge       = 70
)

// promoDiscounts is the flat-percentage discount table. Codes match
// case-insensitively; an unknown code simply contributes no discount.
var promoDiscounts = map[string]float64{
	"AEGIS10":  0.10,
	"FAMILY15": 0.15,
	"WELCOME5": 0.05,
}

var (
	ErrAgeOutOfRange   = errors.New("age must be between 18 and 70")
	ErrInvalidCoverage = errors.New("coverage amount must be positive")
)

// QuoteInput carries the fields of one quote request. BaseRate comes from
// the selected policy; zero falls back to the default rate.
type QuoteInput struct {
	Age            int
	Gender         string
	CoverageAmount float64
	Smoker         bool
	PromoCode      string
	BaseRate       float64
}

// EstimatePremium computes the estimated monthly premium, rounded to cents.
func EstimatePremium(in QuoteInput) (float64, error) {
	if in.Age < MinQuoteAge || in.Age > MaxQuoteAge {
		return 0, ErrAgeOutOfRange
	}
	if in.CoverageAmount <= 0 {
		return 0, ErrInvalidCoverage
	}

	base := in.BaseRate
	if base <= 0 {
		base = DefaultBaseRate
	}

	premium := base
	premium += float64(in.Age-MinQuoteAge) * AgeLoadingPerYear
	premium += in.CoverageAmount / CoverageDivisor
	if strings.EqualFold(in.Gender, "male") {
		premium += MaleSurcharge
	}
	if in.Smoker {
		premium += SmokerSurcharge
	}

	premium -= premium * PromoDiscount(in.PromoCode)
	return math.Round(premium*100) / 100, nil
}

// PromoDiscount returns the discount fraction for a promo code, zero when
// the code is unknown or empty.
func PromoDiscount(code string) float64 {
	return promoDiscounts[strings.ToUpper(strings.TrimSpace(code))]
}
