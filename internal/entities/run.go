package entities

import "time"

type Run struct {
	ID         string `gorm:"primaryKey"`
	StartedAt  time.Time
	FinishedAt time.Time
	Discovered int
	Collected  int
	Failed     int
	Error      string
	CreatedAt  time.Time
}

type FailedVacancy struct {
	RunID     string `gorm:"primaryKey"`
	VacancyID string `gorm:"primaryKey"`
	Error     string
	CreatedAt time.Time
}
