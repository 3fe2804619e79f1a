package chat

import (
	"PraxisAdminClient/internal/model"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventMessageNew  EventType = "message.new"
	EventMessageRead EventType = "message.read"
)

// Frame is the wire envelope on the push channel: the topic names the event
// stream, the body carries the event payload. The transport guarantees
// per-topic ordering; handlers must apply frames in the order received.
type Frame struct {
	Topic string          `json:"topic"`
	Body  json.RawMessage `json:"body"`
}

type NewMessageEvent struct {
	Message   model.MessageDTO `json:"message"`
	RoomID    uuid.UUID        `json:"roomId"`
	RequestID string           `json:"requestId"`
}

type ReadByEvent struct {
	ParticipantID uuid.UUID `json:"participantId"`
	ReadAt        time.Time `json:"readAt"`
}

type MessagesReadEvent struct {
	RoomID     uuid.UUID   `json:"roomId"`
	ReadBy     ReadByEvent `json:"readBy"`
	MessageIDs []uuid.UUID `json:"messageIds"`
}

func InboxTopic(participantID uuid.UUID) string {
	return fmt.Sprintf("/topic/chat.inbox.%s", participantID)
}

func ReadTopic(participantID uuid.UUID) string {
	return InboxTopic(participantID) + ".read"
}
