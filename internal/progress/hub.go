package progress

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Event is the wire payload broadcast to observers.
type Event struct {
	Percent float64 `json:"percent"`
}

// Observer is one connected party awaiting progress updates. Events arrive on
// Events until Unsubscribe closes it. Observers that fall behind have events
// dropped rather than blocking the pipeline.
type Observer struct {
	ID     string
	Events chan Event
}

// Hub is the process-wide observer registry. Pipelines publish through the
// Reporter interface; transports (the websocket handler) subscribe one
// Observer per connection. All methods are safe for concurrent use.
type Hub struct {
	mu        sync.RWMutex
	observers map[string]*Observer
	log       *logrus.Entry
}

// NewHub returns an empty registry.
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		observers: make(map[string]*Observer),
		log:       logger.WithField("component", "progress"),
	}
}

// Subscribe registers a new observer.
func (h *Hub) Subscribe() *Observer {
	h.mu.Lock()
	defer h.mu.Unlock()

	obs := &Observer{
		ID:     uuid.NewString(),
		Events: make(chan Event, 16),
	}
	h.observers[obs.ID] = obs

	h.log.WithField("observer_id", obs.ID).Debug("observer subscribed")
	return obs
}

// Unsubscribe removes an observer and closes its event channel. Calling it
// with an unknown or already-removed ID is a no-op.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if obs, ok := h.observers[id]; ok {
		close(obs.Events)
		delete(h.observers, id)
		h.log.WithField("observer_id", id).Debug("observer unsubscribed")
	}
}

// Len returns the number of connected observers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

// Update implements Reporter: percentage updates are broadcast to every
// connected observer. Updates with an unknown percentage are not broadcast.
func (h *Hub) Update(u Update) {
	if u.Percent < 0 {
		return
	}
	h.Broadcast(Event{Percent: u.Percent})
}

// Broadcast delivers an event to all observers. A full observer channel drops
// the event; only the most recent percentage matters to a consumer.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, obs := range h.observers {
		select {
		case obs.Events <- ev:
		default:
			h.log.WithField("observer_id", obs.ID).Debug("observer channel full, dropping event")
		}
	}
}
