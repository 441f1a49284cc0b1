package services

import (
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hh-harvester/internal/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_ProgressReporter_ShouldReportEveryStep(t *testing.T) {

	bus := EventBus.New()
	reporter, err := NewProgressReporter(bus, 25)
	require.NoError(t, err)

	bus.Publish(events.IDsCollectedTopic, events.IDsCollected{RunID: "run", Total: 8})

	bus.Publish(events.VacancyFetchedTopic, events.VacancyFetched{RunID: "run", Done: 1, Total: 8})
	assert.Equal(t, 0, reporter.Reported())

	bus.Publish(events.VacancyFetchedTopic, events.VacancyFetched{RunID: "run", Done: 2, Total: 8})
	assert.Equal(t, 25, reporter.Reported())

	bus.Publish(events.VacancyFetchFailedTopic, events.VacancyFetchFailed{RunID: "run", Done: 5, Total: 8})
	assert.Equal(t, 50, reporter.Reported())

	bus.Publish(events.VacancyFetchedTopic, events.VacancyFetched{RunID: "run", Done: 8, Total: 8})
	assert.Equal(t, 100, reporter.Reported())

	bus.Publish(events.IDsCollectedTopic, events.IDsCollected{RunID: "next", Total: 3})
	assert.Equal(t, 0, reporter.Reported())
}

func Test_ProgressReporter_InvalidStep_ShouldDefault(t *testing.T) {

	reporter, err := NewProgressReporter(EventBus.New(), 0)
	require.NoError(t, err)
	assert.Equal(t, 10, reporter.step)
}
