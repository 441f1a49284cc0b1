package export

import (
	"github.com/maxaizer/hh-harvester/internal/dataset"
	"github.com/maxaizer/hh-harvester/internal/domain/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"testing"
)

func testDataset(t *testing.T) *dataset.Dataset {
	d, err := dataset.ToDataset([]models.VacancyRecord{
		{
			ID:          "A",
			Name:        "Python developer",
			Employer:    "Acme",
			Salary:      models.NormalizedSalary{HasSalary: true, From: lo.ToPtr(50000), To: lo.ToPtr(60000)},
			Experience:  "1-3 years",
			Schedule:    "Remote",
			KeySkills:   []string{"Python", "SQL"},
			Description: "Hello, world",
		},
		{
			ID:        "B",
			Name:      "Tester",
			KeySkills: []string{},
		},
	})
	require.NoError(t, err)
	return d
}
