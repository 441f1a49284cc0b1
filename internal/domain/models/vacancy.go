package models

type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	RUR Currency = "RUR"
)

// SalaryQuote is a salary range as hh publishes it: in the vacancy currency,
// optionally before tax.
type SalaryQuote struct {
	Currency Currency
	Gross    bool
	From     *float64
	To       *float64
}

// NormalizedSalary is a net amount in the reference currency. HasSalary is set
// whenever the source had a quote, even if the amounts couldn't be converted.
type NormalizedSalary struct {
	HasSalary bool
	From      *int
	To        *int
}

type VacancyRecord struct {
	ID          string
	Name        string
	Employer    string
	Salary      NormalizedSalary
	Experience  string
	Schedule    string
	KeySkills   []string
	Description string
}
