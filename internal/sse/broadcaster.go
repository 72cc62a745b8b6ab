package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/eslteam/chesstutor/internal/model"
)

// Broadcaster fans engine events out to SSE clients as JSON frames. The
// SSE event name is the engine event type; the payload is the event's
// JSON-marshalled payload, or an empty object for signal-only events.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// BroadcastEvents sends a batch of engine events to a channel's clients,
// preserving emission order. Channels with no hub (nobody listening) are
// skipped silently.
func (b *Broadcaster) BroadcastEvents(channel Channel, events []model.Event) {
	if len(events) == 0 {
		return
	}
	hub := b.hubManager.GetHub(channel)
	if hub == nil {
		return
	}

	for _, ev := range events {
		hub.BroadcastEvent(string(ev.Type), b.encodePayload(channel, ev))
	}
}

// BroadcastGameEvents sends events for a free-play game
func (b *Broadcaster) BroadcastGameEvents(id model.GameID, events []model.Event) {
	b.BroadcastEvents(GameChannel(id), events)
}

// BroadcastSessionEvents sends events for a puzzle session
func (b *Broadcaster) BroadcastSessionEvents(id model.SessionID, events []model.Event) {
	b.BroadcastEvents(SessionChannel(id), events)
}

func (b *Broadcaster) encodePayload(channel Channel, ev model.Event) string {
	if ev.Payload == nil {
		return "{}"
	}
	data, err := json.Marshal(ev.Payload)
	if err != nil {
		b.logger.Error("sse failed to encode event payload",
			slog.String("channel", string(channel)),
			slog.String("event_type", string(ev.Type)),
			slog.Any("error", err))
		return "{}"
	}
	return string(data)
}
