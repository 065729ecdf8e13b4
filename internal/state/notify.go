package state

import "time"

// Notification packages one successful transition for observers: the
// stringified previous and new states, the stringified event, when it
// happened, and the derived-view flags for the new state. Delivery is
// best effort; a dropped notification never rolls back the transition.
type Notification struct {
	Previous  string    `json:"previous"`
	Current   string    `json:"current"`
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
	Flags     Flags     `json:"flags"`
}

func notificationFor(prev, next AppState, event AppEvent, at time.Time) Notification {
	return Notification{
		Previous:  prev.String(),
		Current:   next.String(),
		Event:     event.String(),
		Timestamp: at,
		Flags:     Snapshot(next),
	}
}
