package events

var VacancyFetchedTopic = "VacancyFetchedEvent"

type VacancyFetched struct {
	RunID     string
	VacancyID string
	Done      int
	Total     int
}

var VacancyFetchFailedTopic = "VacancyFetchFailedEvent"

type VacancyFetchFailed struct {
	RunID     string
	VacancyID string
	Done      int
	Total     int
	Err       error
}
