package services

import (
	"context"
	"encoding/json"
	"github.com/maxaizer/hh-harvester/internal/clients/hh"
	"github.com/maxaizer/hh-harvester/internal/salary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func vacancyFromJSON(t *testing.T, payload string) hh.Vacancy {
	var vacancy hh.Vacancy
	require.NoError(t, json.Unmarshal([]byte(payload), &vacancy))
	return vacancy
}

func newTestNormalizer() *salary.Normalizer {
	return salary.NewNormalizer(salary.DefaultRates(), salary.DefaultGrossFactor)
}

func Test_DetailFetcher_ShouldBuildRecord(t *testing.T) {

	assert := assert.New(t)

	client := &mockVacancyClient{}
	client.On("GetVacancy", mock.Anything, "42").Return(vacancyFromJSON(t, `{
		"id": "42",
		"name": "Go developer",
		"employer": {"name": "Acme"},
		"experience": {"name": "1-3 years"},
		"schedule": {"name": "Remote"},
		"salary": {"currency": "RUR", "gross": true, "from": 100000, "to": null},
		"key_skills": [{"name": "Go"}, {"name": "SQL"}],
		"description": "<p>Write <b>Go</b></p>"
	}`), nil)

	record, err := NewDetailFetcher(client, newTestNormalizer(), 0).FetchDetail(context.Background(), "42")

	assert.NoError(err)
	assert.Equal("42", record.ID)
	assert.Equal("Go developer", record.Name)
	assert.Equal("Acme", record.Employer)
	assert.Equal("1-3 years", record.Experience)
	assert.Equal("Remote", record.Schedule)
	assert.Equal([]string{"Go", "SQL"}, record.KeySkills)
	assert.Equal("Write Go", record.Description)
	assert.True(record.Salary.HasSalary)
	assert.Equal(87000, *record.Salary.From)
	assert.Nil(record.Salary.To)
}

func Test_DetailFetcher_MissingFields_ShouldDefault(t *testing.T) {

	assert := assert.New(t)

	client := &mockVacancyClient{}
	client.On("GetVacancy", mock.Anything, "7").Return(vacancyFromJSON(t, `{"id": "7", "salary": null}`), nil)

	record, err := NewDetailFetcher(client, newTestNormalizer(), 0).FetchDetail(context.Background(), "7")

	assert.NoError(err)
	assert.Equal("", record.Name)
	assert.Equal("", record.Employer)
	assert.Equal("", record.Experience)
	assert.Equal("", record.Schedule)
	assert.Equal("", record.Description)
	assert.NotNil(record.KeySkills)
	assert.Empty(record.KeySkills)
	assert.False(record.Salary.HasSalary)
	assert.Nil(record.Salary.From)
	assert.Nil(record.Salary.To)
}

func Test_DetailFetcher_ClientError_ShouldWrapId(t *testing.T) {

	client := &mockVacancyClient{}
	client.On("GetVacancy", mock.Anything, "9").Return(hh.Vacancy{}, hh.ErrNetwork)

	_, err := NewDetailFetcher(client, newTestNormalizer(), 0).FetchDetail(context.Background(), "9")

	assert.ErrorIs(t, err, hh.ErrNetwork)
	assert.Contains(t, err.Error(), "vacancy 9")
}

func Test_DetailFetcher_WithCache_ShouldRequestOnce(t *testing.T) {

	client := &mockVacancyClient{}
	client.On("GetVacancy", mock.Anything, "1").Return(vacancyFromJSON(t, `{"id": "1", "name": "cached"}`), nil).Once()

	fetcher := NewDetailFetcher(client, newTestNormalizer(), time.Minute)

	first, err := fetcher.FetchDetail(context.Background(), "1")
	assert.NoError(t, err)
	second, err := fetcher.FetchDetail(context.Background(), "1")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	client.AssertNumberOfCalls(t, "GetVacancy", 1)
}

func Test_DetailFetcher_FailedFetch_ShouldNotBeCached(t *testing.T) {

	client := &mockVacancyClient{}
	client.On("GetVacancy", mock.Anything, "1").Return(hh.Vacancy{}, hh.ErrNetwork).Once()
	client.On("GetVacancy", mock.Anything, "1").Return(vacancyFromJSON(t, `{"id": "1"}`), nil).Once()

	fetcher := NewDetailFetcher(client, newTestNormalizer(), time.Minute)

	_, err := fetcher.FetchDetail(context.Background(), "1")
	assert.Error(t, err)
	_, err = fetcher.FetchDetail(context.Background(), "1")
	assert.NoError(t, err)

	client.AssertNumberOfCalls(t, "GetVacancy", 2)
}
