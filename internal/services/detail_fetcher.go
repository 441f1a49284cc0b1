package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/hh-harvester/internal/clients/hh"
	"github.com/maxaizer/hh-harvester/internal/domain/models"
	"github.com/maxaizer/hh-harvester/internal/metrics"
	"github.com/maxaizer/hh-harvester/internal/salary"
	"github.com/maxaizer/hh-harvester/internal/text"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"time"
)

type vacancyClient interface {
	GetVacancy(ctx context.Context, id string) (hh.Vacancy, error)
}

type DetailFetcher struct {
	client     vacancyClient
	normalizer *salary.Normalizer
	cache      *gocache.Cache
}

// NewDetailFetcher creates a fetcher. A positive cacheTTL keeps fetched
// records in memory, so repeated runs inside the TTL skip the request.
func NewDetailFetcher(client vacancyClient, normalizer *salary.Normalizer, cacheTTL time.Duration) *DetailFetcher {
	f := &DetailFetcher{client: client, normalizer: normalizer}
	if cacheTTL > 0 {
		f.cache = gocache.New(cacheTTL, 2*cacheTTL)
	}
	return f
}

func (f *DetailFetcher) FetchDetail(ctx context.Context, id string) (models.VacancyRecord, error) {

	if f.cache != nil {
		if cached, found := f.cache.Get(id); found {
			return cached.(models.VacancyRecord), nil
		}
	}

	start := time.Now()
	vacancy, err := f.client.GetVacancy(ctx, id)
	metrics.StepDuration.WithLabelValues(metrics.StepDetail).Observe(time.Since(start).Seconds())

	if err != nil {
		return models.VacancyRecord{}, fmt.Errorf("vacancy %s: %w", id, err)
	}

	record := f.toRecord(id, vacancy)

	if f.cache != nil {
		f.cache.Set(id, record, gocache.DefaultExpiration)
	}
	return record, nil
}

func (f *DetailFetcher) toRecord(id string, vacancy hh.Vacancy) models.VacancyRecord {
	quote := vacancy.SalaryQuote()
	if quote != nil && !f.normalizer.Supports(quote.Currency) {
		log.Warnf("vacancy %s: no rate for currency %q, salary amounts are dropped", id, quote.Currency)
	}

	return models.VacancyRecord{
		ID:          id,
		Name:        vacancy.Name,
		Employer:    vacancy.EmployerName(),
		Salary:      f.normalizer.Normalize(quote),
		Experience:  vacancy.ExperienceName(),
		Schedule:    vacancy.ScheduleName(),
		KeySkills:   vacancy.SkillNames(),
		Description: text.StripTags(vacancy.Description),
	}
}
