package hh

import (
	"github.com/maxaizer/hh-harvester/internal/domain/models"
	"github.com/samber/lo"
)

// Page is a single page of the vacancies index. Items is nil when the
// response has no "items" field, which hh does past the last page.
type Page struct {
	Items *[]VacancyPreview `json:"items"`
	Pages int               `json:"pages"`
	Found int               `json:"found"`
}

func (p Page) HasItems() bool {
	return p.Items != nil
}

func (p Page) IDs() []string {
	if p.Items == nil {
		return nil
	}
	return lo.Map(*p.Items, func(item VacancyPreview, _ int) string {
		return item.ID
	})
}

type VacancyPreview struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Url  string `json:"alternate_url"`
}

// Vacancy is the detail payload. Every field is optional: absent objects
// decode as nil and absent strings as "".
type Vacancy struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Employer    *named     `json:"employer"`
	Experience  *named     `json:"experience"`
	Schedule    *named     `json:"schedule"`
	Salary      *Salary    `json:"salary"`
	KeySkills   []KeySkill `json:"key_skills"`
	Description string     `json:"description"`
}

type named struct {
	Name string `json:"name"`
}

type KeySkill struct {
	Name string `json:"name"`
}

type Salary struct {
	Currency string   `json:"currency"`
	Gross    *bool    `json:"gross"`
	From     *float64 `json:"from"`
	To       *float64 `json:"to"`
}

func (v Vacancy) EmployerName() string {
	return nameOf(v.Employer)
}

func (v Vacancy) ExperienceName() string {
	return nameOf(v.Experience)
}

func (v Vacancy) ScheduleName() string {
	return nameOf(v.Schedule)
}

func (v Vacancy) SkillNames() []string {
	return lo.Map(v.KeySkills, func(skill KeySkill, _ int) string {
		return skill.Name
	})
}

func (v Vacancy) SalaryQuote() *models.SalaryQuote {
	if v.Salary == nil {
		return nil
	}
	return &models.SalaryQuote{
		Currency: models.Currency(v.Salary.Currency),
		Gross:    lo.FromPtr(v.Salary.Gross),
		From:     v.Salary.From,
		To:       v.Salary.To,
	}
}

func nameOf(n *named) string {
	if n == nil {
		return ""
	}
	return n.Name
}
