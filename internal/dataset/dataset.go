package dataset

import (
	"fmt"
	"github.com/maxaizer/hh-harvester/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrSchemaMismatch = errors.New("dataset columns are not aligned")

const (
	ColumnIds         = "Ids"
	ColumnEmployer    = "Employer"
	ColumnName        = "Name"
	ColumnSalary      = "Salary"
	ColumnFrom        = "From"
	ColumnTo          = "To"
	ColumnExperience  = "Experience"
	ColumnSchedule    = "Schedule"
	ColumnKeys        = "Keys"
	ColumnDescription = "Description"
)

// ColumnNames is the fixed export schema, in export order.
var ColumnNames = []string{
	ColumnIds,
	ColumnEmployer,
	ColumnName,
	ColumnSalary,
	ColumnFrom,
	ColumnTo,
	ColumnExperience,
	ColumnSchedule,
	ColumnKeys,
	ColumnDescription,
}

type Dataset struct {
	Ids         []string
	Employer    []string
	Name        []string
	Salary      []bool
	From        []*int
	To          []*int
	Experience  []string
	Schedule    []string
	Keys        [][]string
	Description []string
}

func ToDataset(records []models.VacancyRecord) (*Dataset, error) {
	d := &Dataset{
		Ids:         make([]string, 0, len(records)),
		Employer:    make([]string, 0, len(records)),
		Name:        make([]string, 0, len(records)),
		Salary:      make([]bool, 0, len(records)),
		From:        make([]*int, 0, len(records)),
		To:          make([]*int, 0, len(records)),
		Experience:  make([]string, 0, len(records)),
		Schedule:    make([]string, 0, len(records)),
		Keys:        make([][]string, 0, len(records)),
		Description: make([]string, 0, len(records)),
	}

	for _, record := range records {
		d.Ids = append(d.Ids, record.ID)
		d.Employer = append(d.Employer, record.Employer)
		d.Name = append(d.Name, record.Name)
		d.Salary = append(d.Salary, record.Salary.HasSalary)
		d.From = append(d.From, record.Salary.From)
		d.To = append(d.To, record.Salary.To)
		d.Experience = append(d.Experience, record.Experience)
		d.Schedule = append(d.Schedule, record.Schedule)
		d.Keys = append(d.Keys, record.KeySkills)
		d.Description = append(d.Description, record.Description)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Len is the row count. It is only meaningful for a dataset that passes Validate.
func (d *Dataset) Len() int {
	return len(d.Ids)
}

func (d *Dataset) Validate() error {
	lengths := d.lengths()
	for _, name := range ColumnNames {
		if lengths[name] != lengths[ColumnIds] {
			return errors.Wrapf(ErrSchemaMismatch, "column %s has %d rows, %s has %d",
				name, lengths[name], ColumnIds, lengths[ColumnIds])
		}
	}
	return nil
}

func (d *Dataset) Column(name string) ([]any, error) {
	switch name {
	case ColumnIds:
		return toAny(d.Ids), nil
	case ColumnEmployer:
		return toAny(d.Employer), nil
	case ColumnName:
		return toAny(d.Name), nil
	case ColumnSalary:
		return toAny(d.Salary), nil
	case ColumnFrom:
		return amountsToAny(d.From), nil
	case ColumnTo:
		return amountsToAny(d.To), nil
	case ColumnExperience:
		return toAny(d.Experience), nil
	case ColumnSchedule:
		return toAny(d.Schedule), nil
	case ColumnKeys:
		return toAny(d.Keys), nil
	case ColumnDescription:
		return toAny(d.Description), nil
	default:
		return nil, fmt.Errorf("unknown column %q", name)
	}
}

// Columns returns the dataset as a column name -> values mapping.
func (d *Dataset) Columns() map[string][]any {
	return lo.SliceToMap(ColumnNames, func(name string) (string, []any) {
		column, _ := d.Column(name)
		return name, column
	})
}

// Row returns the record stored at index i.
func (d *Dataset) Row(i int) models.VacancyRecord {
	return models.VacancyRecord{
		ID:       d.Ids[i],
		Name:     d.Name[i],
		Employer: d.Employer[i],
		Salary: models.NormalizedSalary{
			HasSalary: d.Salary[i],
			From:      d.From[i],
			To:        d.To[i],
		},
		Experience:  d.Experience[i],
		Schedule:    d.Schedule[i],
		KeySkills:   d.Keys[i],
		Description: d.Description[i],
	}
}

func (d *Dataset) lengths() map[string]int {
	return map[string]int{
		ColumnIds:         len(d.Ids),
		ColumnEmployer:    len(d.Employer),
		ColumnName:        len(d.Name),
		ColumnSalary:      len(d.Salary),
		ColumnFrom:        len(d.From),
		ColumnTo:          len(d.To),
		ColumnExperience:  len(d.Experience),
		ColumnSchedule:    len(d.Schedule),
		ColumnKeys:        len(d.Keys),
		ColumnDescription: len(d.Description),
	}
}

func toAny[T any](values []T) []any {
	return lo.Map(values, func(v T, _ int) any { return v })
}

// amountsToAny boxes missing amounts as untyped nil.
func amountsToAny(amounts []*int) []any {
	return lo.Map(amounts, func(amount *int, _ int) any {
		if amount == nil {
			return nil
		}
		return *amount
	})
}
