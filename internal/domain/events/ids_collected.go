package events

var IDsCollectedTopic = "IDsCollectedEvent"

type IDsCollected struct {
	RunID string
	Total int
}
