package services

import (
	"context"
	"github.com/maxaizer/hh-harvester/internal/clients/hh"
	"github.com/maxaizer/hh-harvester/internal/dataset"
	"github.com/maxaizer/hh-harvester/internal/domain/models"
	"github.com/stretchr/testify/mock"
	"math/rand"
	"sync"
	"time"
)

type mockIndexClient struct {
	mock.Mock
}

func (m *mockIndexClient) GetPagesCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockIndexClient) GetPage(ctx context.Context, page int) (hh.Page, error) {
	args := m.Called(ctx, page)
	return args.Get(0).(hh.Page), args.Error(1)
}

func pageOf(ids ...string) hh.Page {
	items := make([]hh.VacancyPreview, 0, len(ids))
	for _, id := range ids {
		items = append(items, hh.VacancyPreview{ID: id})
	}
	return hh.Page{Items: &items}
}

type mockVacancyClient struct {
	mock.Mock
}

func (m *mockVacancyClient) GetVacancy(ctx context.Context, id string) (hh.Vacancy, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(hh.Vacancy), args.Error(1)
}

type mockIDCollector struct {
	ids []string
	err error
}

func (m mockIDCollector) CollectIDs(ctx context.Context, pageLimit int) ([]string, error) {
	return m.ids, m.err
}

// mockDetailFetcher answers after a random delay, so results complete out of order.
type mockDetailFetcher struct {
	mu          sync.Mutex
	maxDelay    time.Duration
	failing     map[string]error
	calls       int
	inFlight    int
	maxInFlight int
}

func (m *mockDetailFetcher) FetchDetail(ctx context.Context, id string) (models.VacancyRecord, error) {
	m.mu.Lock()
	m.calls++
	m.inFlight++
	m.maxInFlight = max(m.maxInFlight, m.inFlight)
	delay := time.Duration(0)
	if m.maxDelay > 0 {
		delay = time.Duration(rand.Int63n(int64(m.maxDelay)))
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	select {
	case <-ctx.Done():
		return models.VacancyRecord{}, ctx.Err()
	case <-time.After(delay):
	}

	if err, ok := m.failing[id]; ok {
		return models.VacancyRecord{}, err
	}
	return models.VacancyRecord{ID: id, Name: "vacancy " + id, KeySkills: []string{}}, nil
}

func (m *mockDetailFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MaxInFlight is the highest number of concurrent fetches seen.
func (m *mockDetailFetcher) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

type mockCollector struct {
	mock.Mock
}

func (m *mockCollector) Collect(ctx context.Context, pageLimit int) (*dataset.Dataset, *models.RunReport, error) {
	args := m.Called(ctx, pageLimit)
	data, _ := args.Get(0).(*dataset.Dataset)
	report, _ := args.Get(1).(*models.RunReport)
	return data, report, args.Error(2)
}

type mockExporter struct {
	mock.Mock
	name string
}

func (m *mockExporter) Name() string {
	return m.name
}

func (m *mockExporter) Export(ctx context.Context, d *dataset.Dataset) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

type mockRunRepository struct {
	mock.Mock
}

func (m *mockRunRepository) Save(ctx context.Context, report models.RunReport, runErr error) error {
	args := m.Called(ctx, report, runErr)
	return args.Error(0)
}

func (m *mockRunRepository) RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error) {
	args := m.Called(ctx, expirationTime)
	return args.Get(0).(int64), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, report models.RunReport, runErr error) error {
	args := m.Called(ctx, report, runErr)
	return args.Error(0)
}

type runnerFunc func(ctx context.Context) error

func (f runnerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
