package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harvester_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "harvester_run_duration_seconds",
			Help:    "Duration of each collection run in seconds.",
			Buckets: []float64{10, 60, 300, 900, 1800, 3600},
		},
	)
	StepDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "harvester_step_duration_seconds",
			Help:       "Duration of each request made during a collection run.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step"},
	)
	DiscoveredVacanciesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvester_vacancies_discovered_total",
			Help: "Total number of vacancy ids read from the index.",
		},
	)
	CollectedVacanciesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvester_vacancies_collected_total",
			Help: "Total number of vacancies fetched and normalized.",
		},
	)
	FailedVacanciesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvester_vacancies_failed_total",
			Help: "Total number of vacancies whose detail could not be fetched.",
		},
	)
)

const (
	StepIndexPage = "index_page"
	StepDetail    = "detail"
	StepExport    = "export"
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(RunDuration)
		prometheus.MustRegister(StepDuration)
		prometheus.MustRegister(DiscoveredVacanciesCounter)
		prometheus.MustRegister(CollectedVacanciesCounter)
		prometheus.MustRegister(FailedVacanciesCounter)
	})
}

func StartMetricsServer(address string) {

	Register()

	if address == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(address, mux))
	}()
	log.Infof("metrics are served on %s/metrics", address)
}
