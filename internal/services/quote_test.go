package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatePremium(t *testing.T) {
	tests := []struct {
		name    string
		input   QuoteInput
		want    float64
		wantErr error
	}{
		{
			name: "non-smoker male",
			input: QuoteInput{
				Age:            35,
				Gender:         "male",
				CoverageAmount: 500000,
			},
			want: 412.50,
		},
		{
			name: "smoker male",
			input: QuoteInput{
				Age:            35,
				Gender:         "male",
				CoverageAmount: 500000,
				Smoker:         true,
			},
			want: 512.50,
		},
		{
			name: "female pays no gender surcharge",
			input: QuoteInput{
				Age:            35,
				Gender:         "female",
				CoverageAmount: 500000,
			},
			want: 392.50,
		},
		{
			name: "minimum age pays no age loading",
			input: QuoteInput{
				Age:            18,
				Gender:         "female",
				CoverageAmount: 100000,
			},
			want: 150.00,
		},
		{
			name: "promo code applies flat percentage",
			input: QuoteInput{
				Age:            35,
				Gender:         "male",
				CoverageAmount: 500000,
				PromoCode:      "AEGIS10",
			},
			want: 371.25,
		},
		{
			name: "promo code is case-insensitive",
			input: QuoteInput{
				Age:            35,
				Gender:         "male",
				CoverageAmount: 500000,
				PromoCode:      "aegis10",
			},
			want: 371.25,
		},
		{
			name: "unknown promo code leaves the premium unchanged",
			input: QuoteInput{
				Age:            35,
				Gender:         "male",
				CoverageAmount: 500000,
				PromoCode:      "NOPE99",
			},
			want: 412.50,
		},
		{
			name: "policy base rate overrides the default",
			input: QuoteInput{
				Age:            35,
				Gender:         "male",
				CoverageAmount: 500000,
				BaseRate:       200,
			},
			want: 512.50,
		},
		{
			name: "below minimum age",
			input: QuoteInput{
				Age:            17,
				Gender:         "male",
				CoverageAmount: 500000,
			},
			wantErr: ErrAgeOutOfRange,
		},
		{
			name: "above maximum age",
			input: QuoteInput{
				Age:            71,
				Gender:         "male",
				CoverageAmount: 500000,
			},
			wantErr: ErrAgeOutOfRange,
		},
		{
			name: "zero coverage",
			input: QuoteInput{
				Age:            35,
				Gender:         "male",
				CoverageAmount: 0,
			},
			wantErr: ErrInvalidCoverage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimatePremium(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestPromoDiscount(t *testing.T) {
	assert.Equal(t, 0.10, PromoDiscount("AEGIS10"))
	assert.Equal(t, 0.15, PromoDiscount(" family15 "))
	assert.Equal(t, 0.05, PromoDiscount("welcome5"))
	assert.Equal(t, 0.0, PromoDiscount(""))
	assert.Equal(t, 0.0, PromoDiscount("BOGUS"))
}
