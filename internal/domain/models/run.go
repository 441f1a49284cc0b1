package models

import "time"

type FetchFailure struct {
	Index     int
	VacancyID string
	Err       error
}

type RunReport struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Discovered int
	Collected  int
	Failures   []FetchFailure
}

func (r *RunReport) FailedCount() int {
	return len(r.Failures)
}
