package services

import (
	"context"
	stderrors "errors"
	"github.com/maxaizer/hh-harvester/internal/dataset"
	"github.com/maxaizer/hh-harvester/internal/domain/models"
	"github.com/maxaizer/hh-harvester/internal/logger"
	"github.com/maxaizer/hh-harvester/internal/metrics"
	log "github.com/sirupsen/logrus"
	"time"
)

type collector interface {
	Collect(ctx context.Context, pageLimit int) (*dataset.Dataset, *models.RunReport, error)
}

type Exporter interface {
	Name() string
	Export(ctx context.Context, d *dataset.Dataset) error
}

type runRepository interface {
	Save(ctx context.Context, report models.RunReport, runErr error) error
}

type notifier interface {
	Notify(ctx context.Context, report models.RunReport, runErr error) error
}

// Harvester is one full pass: collect, export, record the run and notify.
type Harvester struct {
	collector collector
	exporters []Exporter
	runs      runRepository
	notifier  notifier
	pageLimit int
}

func NewHarvester(collector collector, exporters []Exporter, runs runRepository, pageLimit int) *Harvester {
	return &Harvester{collector: collector, exporters: exporters, runs: runs, pageLimit: pageLimit}
}

func (h *Harvester) WithNotifier(n notifier) *Harvester {
	h.notifier = n
	return h
}

func (h *Harvester) Run(ctx context.Context) error {

	startTime := time.Now()
	log.Infof("running collection at %v", startTime)

	data, report, err := h.collector.Collect(ctx, h.pageLimit)
	if err == nil {
		err = h.export(ctx, data)
	}

	executionTime := time.Since(startTime)
	metrics.RunDuration.Observe(executionTime.Seconds())

	if err != nil {
		log.Errorf("collection failed after %v: %v", executionTime, err)
	} else {
		log.Infof("collection ended after %v", executionTime)
	}

	// the run outcome is stored even if ctx is already cancelled
	finishCtx := context.WithoutCancel(ctx)

	if report != nil && h.runs != nil {
		if saveErr := h.runs.Save(finishCtx, *report, err); saveErr != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to save run %v: %v", report.ID, saveErr)
		}
	}

	if report != nil && h.notifier != nil {
		if notifyErr := h.notifier.Notify(finishCtx, *report, err); notifyErr != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeNotify).Errorf("failed to send run summary: %v", notifyErr)
		}
	}

	return err
}

func (h *Harvester) export(ctx context.Context, data *dataset.Dataset) error {
	var errs []error
	for _, e := range h.exporters {
		start := time.Now()
		err := e.Export(ctx, data)
		metrics.StepDuration.WithLabelValues(metrics.StepExport).Observe(time.Since(start).Seconds())

		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeExport).Errorf("%v export failed: %v", e.Name(), err)
			errs = append(errs, err)
			continue
		}
		log.Infof("%v rows exported to %v", data.Len(), e.Name())
	}
	return stderrors.Join(errs...)
}
