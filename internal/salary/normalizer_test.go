package salary

import (
	"github.com/maxaizer/hh-harvester/internal/domain/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_Normalize_WithoutQuote_ShouldHaveNoSalary(t *testing.T) {
	n := NewNormalizer(DefaultRates(), DefaultGrossFactor)

	result := n.Normalize(nil)

	assert.Equal(t, models.NormalizedSalary{HasSalary: false, From: nil, To: nil}, result)
}

func Test_Normalize_NetRubles_ShouldKeepAmounts(t *testing.T) {
	n := NewNormalizer(DefaultRates(), DefaultGrossFactor)

	result := n.Normalize(&models.SalaryQuote{
		Currency: models.RUR,
		From:     lo.ToPtr(100000.0),
		To:       lo.ToPtr(150000.0),
	})

	assert.True(t, result.HasSalary)
	assert.Equal(t, 100000, *result.From)
	assert.Equal(t, 150000, *result.To)
}

func Test_Normalize_GrossDollars_ShouldConvertAndTruncate(t *testing.T) {
	n := NewNormalizer(DefaultRates(), DefaultGrossFactor)

	result := n.Normalize(&models.SalaryQuote{
		Currency: models.USD,
		Gross:    true,
		From:     lo.ToPtr(1000.0),
	})

	gross, amount, rate := 0.87, 1000.0, 0.01187
	expected := int(gross * amount / rate)
	assert.True(t, result.HasSalary)
	assert.Equal(t, 73294, expected)
	assert.Equal(t, expected, *result.From)
	assert.Nil(t, result.To)
}

func Test_Normalize_Euros_ShouldConvertBothBounds(t *testing.T) {
	n := NewNormalizer(DefaultRates(), DefaultGrossFactor)

	result := n.Normalize(&models.SalaryQuote{
		Currency: models.EUR,
		From:     lo.ToPtr(2000.0),
		To:       lo.ToPtr(3000.0),
	})

	rate := 0.01067
	assert.Equal(t, int(2000/rate), *result.From)
	assert.Equal(t, int(3000/rate), *result.To)
}

func Test_Normalize_UnsupportedCurrency_ShouldKeepSalaryWithoutAmounts(t *testing.T) {
	n := NewNormalizer(DefaultRates(), DefaultGrossFactor)

	result := n.Normalize(&models.SalaryQuote{
		Currency: "KZT",
		From:     lo.ToPtr(500000.0),
	})

	assert.Equal(t, models.NormalizedSalary{HasSalary: true}, result)
	assert.False(t, n.Supports("KZT"))
}

func Test_Normalize_QuoteWithoutBounds_ShouldStillHaveSalary(t *testing.T) {
	n := NewNormalizer(DefaultRates(), DefaultGrossFactor)

	result := n.Normalize(&models.SalaryQuote{Currency: models.RUR})

	assert.True(t, result.HasSalary)
	assert.Nil(t, result.From)
	assert.Nil(t, result.To)
}

func Test_NewNormalizer_ShouldNotShareRatesTable(t *testing.T) {
	rates := DefaultRates()
	n := NewNormalizer(rates, DefaultGrossFactor)

	rates[models.RUR] = 2

	result := n.Normalize(&models.SalaryQuote{Currency: models.RUR, From: lo.ToPtr(10.0)})
	assert.Equal(t, 10, *result.From)
}

func Test_Normalize_NonPositiveRate_ShouldBeUnsupported(t *testing.T) {
	n := NewNormalizer(Rates{models.RUR: 1, models.USD: 0}, DefaultGrossFactor)

	result := n.Normalize(&models.SalaryQuote{Currency: models.USD, From: lo.ToPtr(1000.0)})

	assert.Equal(t, models.NormalizedSalary{HasSalary: true}, result)
	assert.False(t, n.Supports(models.USD))
	assert.True(t, n.Supports(models.RUR))
}
