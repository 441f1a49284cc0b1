package salary

import (
	"github.com/maxaizer/hh-harvester/internal/domain/models"
)

// Rates maps a currency to the amount of that currency in one reference unit,
// so dividing an amount by its rate converts it into the reference currency.
type Rates map[models.Currency]float64

const DefaultGrossFactor = 0.87

func DefaultRates() Rates {
	return Rates{
		models.USD: 0.01187,
		models.EUR: 0.01067,
		models.RUR: 1.00000,
	}
}

type Normalizer struct {
	rates       Rates
	grossFactor float64
}

func NewNormalizer(rates Rates, grossFactor float64) *Normalizer {
	copied := make(Rates, len(rates))
	for currency, rate := range rates {
		copied[currency] = rate
	}
	return &Normalizer{rates: copied, grossFactor: grossFactor}
}

func (n *Normalizer) Normalize(quote *models.SalaryQuote) models.NormalizedSalary {
	if quote == nil {
		return models.NormalizedSalary{}
	}

	result := models.NormalizedSalary{HasSalary: true}

	rate, ok := n.rate(quote.Currency)
	if !ok {
		return result
	}

	factor := 1.0
	if quote.Gross {
		factor = n.grossFactor
	}

	result.From = n.convert(quote.From, factor, rate)
	result.To = n.convert(quote.To, factor, rate)
	return result
}

func (n *Normalizer) Supports(currency models.Currency) bool {
	_, ok := n.rate(currency)
	return ok
}

func (n *Normalizer) rate(currency models.Currency) (float64, bool) {
	rate, ok := n.rates[currency]
	return rate, ok && rate > 0
}

func (n *Normalizer) convert(bound *float64, factor, rate float64) *int {
	if bound == nil {
		return nil
	}
	// truncation toward zero
	amount := int(factor * *bound / rate)
	return &amount
}
