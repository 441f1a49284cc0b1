package services

import (
	"context"
	"github.com/maxaizer/hh-harvester/internal/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"time"
)

type HistoryCleanupRepository interface {
	RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error)
}

type HistoryCleaner struct {
	runs             HistoryCleanupRepository
	cron             *cron.Cron
	expirationInDays int
	now              func() time.Time
}

func NewHistoryCleaner(runs HistoryCleanupRepository, expirationInDays int) (*HistoryCleaner, error) {

	if expirationInDays <= 0 {
		return nil, errors.New("expiration in days must be greater than zero")
	}

	return &HistoryCleaner{
		runs:             runs,
		cron:             cron.New(),
		expirationInDays: expirationInDays,
		now:              time.Now,
	}, nil
}

func (hc *HistoryCleaner) Start() error {
	_, err := hc.cron.AddFunc("0 0 * * *", func() { hc.Clean(context.Background()) })
	if err != nil {
		return err
	}

	hc.cron.Start()
	log.Infof("run history cleaner started, expiration in days: %d", hc.expirationInDays)
	return nil
}

func (hc *HistoryCleaner) Stop() {
	hc.cron.Stop()
}

func (hc *HistoryCleaner) Clean(ctx context.Context) {
	expirationTime := hc.now().AddDate(0, 0, -hc.expirationInDays)
	rowsAffected, err := hc.runs.RemoveOlderThan(ctx, expirationTime)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to clean run history: %v", err)
	} else {
		log.Infof("run history older than %v was cleaned, affected rows: %v", expirationTime, rowsAffected)
	}
}
