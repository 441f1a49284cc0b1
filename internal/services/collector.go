package services

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/maxaizer/hh-harvester/internal/dataset"
	"github.com/maxaizer/hh-harvester/internal/domain/events"
	"github.com/maxaizer/hh-harvester/internal/domain/models"
	"github.com/maxaizer/hh-harvester/internal/metrics"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"sync"
	"time"
)

type FailurePolicy string

const (
	// FailurePolicyAbort cancels the whole run on the first failed fetch.
	FailurePolicyAbort FailurePolicy = "abort"
	// FailurePolicySkip drops the failed vacancy from the dataset and goes on.
	FailurePolicySkip FailurePolicy = "skip"
)

const DefaultWorkers = 10

type idCollector interface {
	CollectIDs(ctx context.Context, pageLimit int) ([]string, error)
}

type detailFetcher interface {
	FetchDetail(ctx context.Context, id string) (models.VacancyRecord, error)
}

// Collector discovers vacancy ids, fetches their details with a fixed number
// of workers and assembles the dataset in discovery order.
type Collector struct {
	ids     idCollector
	fetcher detailFetcher
	bus     EventBus.Bus
	workers int
	policy  FailurePolicy
}

func NewCollector(ids idCollector, fetcher detailFetcher, bus EventBus.Bus,
	workers int, policy FailurePolicy) (*Collector, error) {

	if ids == nil || fetcher == nil {
		return nil, errors.New("id collector and detail fetcher are required")
	}

	if workers <= 0 {
		return nil, fmt.Errorf("workers must be greater than zero, got %d", workers)
	}

	if policy != FailurePolicyAbort && policy != FailurePolicySkip {
		return nil, fmt.Errorf("unknown failure policy %q", policy)
	}

	return &Collector{ids: ids, fetcher: fetcher, bus: bus, workers: workers, policy: policy}, nil
}

type fetchJob struct {
	index int
	id    string
}

type fetchResult struct {
	index  int
	id     string
	record models.VacancyRecord
	err    error
}

// Collect runs one collection. The report is returned even when the run
// fails; the dataset is returned only on success.
func (c *Collector) Collect(ctx context.Context, pageLimit int) (*dataset.Dataset, *models.RunReport, error) {

	report := &models.RunReport{ID: uuid.NewString(), StartedAt: time.Now()}
	defer func() { report.FinishedAt = time.Now() }()

	log.Infof("collection %v started, page limit: %v, workers: %v, failure policy: %v",
		report.ID, pageLimit, c.workers, c.policy)

	ids, err := c.ids.CollectIDs(ctx, pageLimit)
	if err != nil {
		return nil, report, fmt.Errorf("failed to collect vacancy ids: %w", err)
	}
	report.Discovered = len(ids)
	c.publish(events.IDsCollectedTopic, events.IDsCollected{RunID: report.ID, Total: len(ids)})

	records, err := c.fetchAll(ctx, report, ids)
	if err != nil {
		return nil, report, err
	}
	report.Collected = len(records)

	result, err := dataset.ToDataset(records)
	if err != nil {
		return nil, report, err
	}

	log.Infof("collection %v finished: %v of %v vacancies collected", report.ID, report.Collected, report.Discovered)
	return result, report, nil
}

func (c *Collector) fetchAll(parent context.Context, report *models.RunReport, ids []string) ([]models.VacancyRecord, error) {

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	jobs := make(chan fetchJob)
	results := make(chan fetchResult, c.workers)

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.work(ctx, jobs, results)
		}()
	}

	go func() {
		defer close(jobs)
		for i, id := range ids {
			select {
			case <-ctx.Done():
				return
			case jobs <- fetchJob{index: i, id: id}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	failures := make(chan failedFetch)
	handler := newErrorHandler(c.bus, report.ID, len(ids))
	go handler.Run(failures)

	slots := make([]*models.VacancyRecord, len(ids))
	var abortErr error
	done := 0

	for result := range results {
		if abortErr != nil {
			continue
		}
		done++

		if result.err != nil {
			failures <- failedFetch{
				FetchFailure: models.FetchFailure{Index: result.index, VacancyID: result.id, Err: result.err},
				done:         done,
			}
			if c.policy == FailurePolicyAbort {
				abortErr = fmt.Errorf("collection aborted: %w", result.err)
				cancel()
			}
			continue
		}

		slots[result.index] = &result.record
		metrics.CollectedVacanciesCounter.Inc()
		c.publish(events.VacancyFetchedTopic, events.VacancyFetched{
			RunID: report.ID, VacancyID: result.id, Done: done, Total: len(ids),
		})
	}

	close(failures)
	report.Failures = handler.Failures()

	if abortErr != nil {
		return nil, abortErr
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}

	records := lo.FilterMap(slots, func(record *models.VacancyRecord, _ int) (models.VacancyRecord, bool) {
		if record == nil {
			return models.VacancyRecord{}, false
		}
		return *record, true
	})
	return records, nil
}

func (c *Collector) work(ctx context.Context, jobs <-chan fetchJob, results chan<- fetchResult) {
	for job := range jobs {
		if ctx.Err() != nil {
			continue
		}
		record, err := c.fetcher.FetchDetail(ctx, job.id)
		results <- fetchResult{index: job.index, id: job.id, record: record, err: err}
	}
}

func (c *Collector) publish(topic string, event any) {
	if c.bus != nil {
		c.bus.Publish(topic, event)
	}
}
