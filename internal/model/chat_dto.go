package model

import (
	"time"

	"github.com/google/uuid"
)

type RoomType string

const (
	RoomPrivate RoomType = "PRIVATE"
	RoomGroup   RoomType = "GROUP"
)

type MessageType string

const (
	MessageText   MessageType = "TEXT"
	MessageImage  MessageType = "IMAGE"
	MessageVoice  MessageType = "VOICE"
	MessageCustom MessageType = "CUSTOM"
)

// DeliveryStatus is a client-only annotation. It never appears on the wire:
// a message persisted by the server is always DELIVERED, the other two states
// exist only for the local optimistic copy between submit and acknowledgment.
type DeliveryStatus string

const (
	StatusSending     DeliveryStatus = "SENDING"
	StatusDelivered   DeliveryStatus = "DELIVERED"
	StatusUndelivered DeliveryStatus = "UNDELIVERED"
)

type ReadReceipt struct {
	Participant UserDTO   `json:"participant"`
	ReadAt      time.Time `json:"readAt"`
}

type MessageDTO struct {
	ID        uuid.UUID     `json:"id"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"createdAt"`
	Type      MessageType   `json:"type"`
	SentBy    UserDTO       `json:"sentBy"`
	ReadBy    []ReadReceipt `json:"readBy"`

	Status DeliveryStatus `json:"-"`

	// LocalID is the client-generated request id attached to optimistic
	// placeholders from creation. Confirmed and echoed copies are matched
	// against it by value.
	LocalID string `json:"-"`
}

func (m MessageDTO) ReadByParticipant(participantID uuid.UUID) bool {
	for _, r := range m.ReadBy {
		if r.Participant.ID == participantID {
			return true
		}
	}
	return false
}

type RoomDTO struct {
	ID           uuid.UUID   `json:"id"`
	Type         RoomType    `json:"type"`
	Name         string      `json:"name"`
	Participants []UserDTO   `json:"participants"`
	LastMessage  *MessageDTO `json:"lastMessage"`
}

func (r RoomDTO) Participant(id uuid.UUID) (UserDTO, bool) {
	for _, p := range r.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return UserDTO{}, false
}

// ChunkState tracks how many reverse-paginated history chunks remain
// unfetched for a room. Current decrements by exactly one per successful
// backfill and never resets after initialization.
type ChunkState struct {
	Current int
	Total   int
}
