package store

import "github.com/belinwu/WeatherApp/observability"

// Store event types.
const (
	EventDispatch  observability.EventType = "store.dispatch"
	EventCommit    observability.EventType = "store.commit"
	EventSkip      observability.EventType = "store.skip"
	EventDrop      observability.EventType = "store.drop"
	EventViolation observability.EventType = "store.violation"
	EventEffect    observability.EventType = "store.effect"
)
