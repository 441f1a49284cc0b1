package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/hh-harvester/internal/clients/hh"
	"github.com/maxaizer/hh-harvester/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"time"
)

type indexClient interface {
	GetPagesCount(ctx context.Context) (int, error)
	GetPage(ctx context.Context, page int) (hh.Page, error)
}

// IDCollector walks the vacancies index page by page.
type IDCollector struct {
	client indexClient
}

func NewIDCollector(client indexClient) *IDCollector {
	return &IDCollector{client: client}
}

// CollectIDs returns the ids of pages 0..n-1 in page order, where n is
// pageLimit or, when pageLimit is 0, the page count reported by the index.
// The walk ends early at the first page without items. Ids are not deduplicated.
func (c *IDCollector) CollectIDs(ctx context.Context, pageLimit int) ([]string, error) {

	if pageLimit < 0 {
		return nil, fmt.Errorf("page limit must be non-negative, got %d", pageLimit)
	}

	pages := pageLimit
	if pages == 0 {
		var err error
		if pages, err = c.client.GetPagesCount(ctx); err != nil {
			return nil, fmt.Errorf("failed to get pages count: %w", err)
		}
		log.Infof("index reports %d pages", pages)
	}

	ids := make([]string, 0)

	for pageNum := 0; pageNum < pages; pageNum++ {

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		page, err := c.client.GetPage(ctx, pageNum)
		metrics.StepDuration.WithLabelValues(metrics.StepIndexPage).Observe(time.Since(start).Seconds())

		if errors.Is(err, hh.ErrTooDeepPagination) {
			log.Warnf("too deep pagination at page %d, stopping index walk", pageNum)
			break
		}
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNum, err)
		}

		if !page.HasItems() {
			log.Debugf("page %d has no items, stopping index walk", pageNum)
			break
		}

		ids = append(ids, page.IDs()...)
	}

	metrics.DiscoveredVacanciesCounter.Add(float64(len(ids)))
	log.Infof("collected %d vacancy ids", len(ids))
	return ids, nil
}
