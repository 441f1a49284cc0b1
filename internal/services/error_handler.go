package services

import (
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hh-harvester/internal/domain/events"
	"github.com/maxaizer/hh-harvester/internal/domain/models"
	"github.com/maxaizer/hh-harvester/internal/logger"
	"github.com/maxaizer/hh-harvester/internal/metrics"
	log "github.com/sirupsen/logrus"
	"sort"
)

// errorHandler records failed fetches of one run. Failures arrive in
// completion order, Failures() returns them in input order.
type errorHandler struct {
	Done     chan struct{}
	bus      EventBus.Bus
	runID    string
	total    int
	failures []models.FetchFailure
}

func newErrorHandler(bus EventBus.Bus, runID string, total int) *errorHandler {
	return &errorHandler{Done: make(chan struct{}), bus: bus, runID: runID, total: total}
}

type failedFetch struct {
	models.FetchFailure
	done int
}

func (e *errorHandler) Run(failures <-chan failedFetch) {
	for failure := range failures {
		e.failures = append(e.failures, failure.FetchFailure)
		metrics.FailedVacanciesCounter.Inc()

		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHhApi).
			Errorf("failed to fetch vacancy %v: %v", failure.VacancyID, failure.Err)

		if e.bus != nil {
			e.bus.Publish(events.VacancyFetchFailedTopic, events.VacancyFetchFailed{
				RunID:     e.runID,
				VacancyID: failure.VacancyID,
				Done:      failure.done,
				Total:     e.total,
				Err:       failure.Err,
			})
		}
	}

	if len(e.failures) > 0 {
		log.Warnf("failed to fetch %v of %v vacancies", len(e.failures), e.total)
	}
	sort.Slice(e.failures, func(i, j int) bool { return e.failures[i].Index < e.failures[j].Index })
	close(e.Done)
}

func (e *errorHandler) Failures() []models.FetchFailure {
	<-e.Done
	return e.failures
}
