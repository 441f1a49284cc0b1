package repositories

import (
	"context"
	"github.com/maxaizer/hh-harvester/internal/domain/models"
	"github.com/maxaizer/hh-harvester/internal/entities"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"time"
)

type Runs struct {
	db *gorm.DB
}

func NewRunsRepository(db *gorm.DB) *Runs {
	return &Runs{db: db}
}

// Save stores the run summary together with its failed fetches.
func (repo *Runs) Save(ctx context.Context, report models.RunReport, runErr error) error {
	run := entities.Run{
		ID:         report.ID,
		StartedAt:  report.StartedAt.UTC(),
		FinishedAt: report.FinishedAt.UTC(),
		Discovered: report.Discovered,
		Collected:  report.Collected,
		Failed:     report.FailedCount(),
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}

	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&run).Error; err != nil {
			return err
		}
		if len(report.Failures) == 0 {
			return nil
		}

		failed := lo.Map(report.Failures, func(f models.FetchFailure, _ int) entities.FailedVacancy {
			return entities.FailedVacancy{RunID: report.ID, VacancyID: f.VacancyID, Error: f.Err.Error()}
		})
		failed = lo.UniqBy(failed, func(f entities.FailedVacancy) string { return f.VacancyID })
		return tx.CreateInBatches(failed, 100).Error
	})
}

func (repo *Runs) Get(ctx context.Context, id string) (*entities.Run, error) {
	var run entities.Run
	if err := repo.db.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (repo *Runs) GetFailed(ctx context.Context, runID string) ([]entities.FailedVacancy, error) {
	var failed []entities.FailedVacancy
	if err := repo.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("vacancy_id").
		Find(&failed).Error; err != nil {
		return nil, err
	}
	return failed, nil
}

func (repo *Runs) RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error) {
	var affected int64
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var expired []string
		if err := tx.Model(&entities.Run{}).
			Where("started_at < ?", expirationTime.UTC()).
			Pluck("id", &expired).Error; err != nil {
			return err
		}
		if len(expired) == 0 {
			return nil
		}

		if err := tx.Delete(&entities.FailedVacancy{}, "run_id IN ?", expired).Error; err != nil {
			return err
		}
		res := tx.Delete(&entities.Run{}, "id IN ?", expired)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}
