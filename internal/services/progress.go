package services

import (
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hh-harvester/internal/domain/events"
	log "github.com/sirupsen/logrus"
	"sync"
)

// ProgressReporter logs the fetch progress of a run every `step` percent.
type ProgressReporter struct {
	mu       sync.Mutex
	step     int
	reported int
	failed   int
}

func NewProgressReporter(bus EventBus.Bus, step int) (*ProgressReporter, error) {
	if step <= 0 || step > 100 {
		step = 10
	}

	p := &ProgressReporter{step: step}

	if err := bus.Subscribe(events.IDsCollectedTopic, p.onIDsCollected); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.VacancyFetchedTopic, p.onVacancyFetched); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.VacancyFetchFailedTopic, p.onVacancyFetchFailed); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *ProgressReporter) onIDsCollected(event events.IDsCollected) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.reported = 0
	p.failed = 0
	log.Infof("run %v: fetching details of %v vacancies", event.RunID, event.Total)
}

func (p *ProgressReporter) onVacancyFetched(event events.VacancyFetched) {
	p.report(event.RunID, event.Done, event.Total, false)
}

func (p *ProgressReporter) onVacancyFetchFailed(event events.VacancyFetchFailed) {
	p.report(event.RunID, event.Done, event.Total, true)
}

func (p *ProgressReporter) report(runID string, done, total int, failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if failed {
		p.failed++
	}
	if total == 0 {
		return
	}

	percent := done * 100 / total
	if percent < p.reported+p.step && done != total {
		return
	}
	p.reported = percent - percent%p.step

	log.Infof("run %v: %v/%v vacancies (%v%%), %v failed", runID, done, total, percent, p.failed)
}

// Reported returns the last logged progress in percent.
func (p *ProgressReporter) Reported() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reported
}
