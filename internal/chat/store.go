package chat

import (
	"PraxisAdminClient/internal/helper"
	"PraxisAdminClient/internal/model"
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store reconciles three update sources into one consistent view of chat
// rooms and their histories: the initial room-list load, reverse-paginated
// chunk backfill, and push events from the Subscriber. It is built when the
// chat page opens and dropped when it closes.
//
// All mutations happen under the mutex and replace whole map entries, so
// interleaved callbacks touching different rooms cannot lose each other's
// updates. Per-room backfill is single-flight; other rooms proceed
// concurrently.
type Store struct {
	api  *API
	self model.UserDTO

	mu          sync.Mutex
	rooms       []model.RoomDTO
	messages    map[uuid.UUID][]model.MessageDTO
	chunks      map[uuid.UUID]model.ChunkState
	loading     map[uuid.UUID]bool
	pendingEcho map[string]struct{}
}

func NewStore(api *API, self model.UserDTO, rooms []model.RoomDTO) *Store {
	s := &Store{
		api:         api,
		self:        self,
		rooms:       append([]model.RoomDTO{}, rooms...),
		messages:    make(map[uuid.UUID][]model.MessageDTO),
		chunks:      make(map[uuid.UUID]model.ChunkState),
		loading:     make(map[uuid.UUID]bool),
		pendingEcho: make(map[string]struct{}),
	}

	for i := range s.rooms {
		if s.rooms[i].LastMessage != nil {
			last := *s.rooms[i].LastMessage
			last.Status = model.StatusDelivered
			s.rooms[i].LastMessage = &last
		}
	}
	s.sortRoomsLocked()

	return s
}

// LoadMessages fetches the next unfetched history chunk for the room and
// prepends it, counting down from the highest-numbered (most recent) chunk.
// The first call also fetches the chunk total. Once the countdown reaches
// zero the call is a no-op. A failed fetch leaves the chunk state unchanged
// and is only logged: the user scrolling again re-attempts it.
func (s *Store) LoadMessages(ctx context.Context, roomID uuid.UUID) {
	s.mu.Lock()
	if s.loading[roomID] {
		s.mu.Unlock()
		return
	}
	state, initialized := s.chunks[roomID]
	if initialized && state.Current == 0 {
		s.mu.Unlock()
		return
	}
	s.loading[roomID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.loading, roomID)
		s.mu.Unlock()
	}()

	if !initialized {
		total, err := s.api.ChunkCount(ctx, roomID)
		if err != nil {
			slog.Error("Failed to fetch chunk count", "roomID", roomID, "error", err)
			return
		}

		state = model.ChunkState{Current: total, Total: total}
		s.mu.Lock()
		s.chunks[roomID] = state
		s.mu.Unlock()

		if state.Current == 0 {
			return
		}
	}

	messages, err := s.api.Chunk(ctx, roomID, state.Current)
	if err != nil {
		slog.Error("Failed to fetch history chunk", "roomID", roomID, "chunk", state.Current, "error", err)
		return
	}
	for i := range messages {
		messages[i].Status = model.StatusDelivered
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.chunks[roomID]
	if !ok || current.Current != state.Current {
		// room state moved on while the fetch was in flight
		return
	}

	s.messages[roomID] = append(messages, s.messages[roomID]...)
	current.Current--
	s.chunks[roomID] = current
}

type SendRequest struct {
	RoomID   uuid.UUID
	Type     model.MessageType
	Text     string
	FileName string
	File     io.Reader
}

// Send inserts an optimistic placeholder, submits the message and resolves
// the placeholder to DELIVERED or UNDELIVERED. It never returns an error:
// delivery failure is encoded in the returned message's status so the render
// path shows an inline indicator instead of an error dialog. A retry is a
// fresh Send.
func (s *Store) Send(ctx context.Context, req SendRequest) model.MessageDTO {
	requestID := uuid.NewString()

	placeholder := model.MessageDTO{
		Message:   placeholderText(req),
		CreatedAt: time.Now(),
		Type:      req.Type,
		SentBy:    s.self,
		Status:    model.StatusSending,
		LocalID:   requestID,
	}

	// The request id is registered before submission so that a broadcast
	// echo of this message is recognized even if it outruns the response.
	s.mu.Lock()
	s.messages[req.RoomID] = append(append([]model.MessageDTO{}, s.messages[req.RoomID]...), placeholder)
	s.pendingEcho[requestID] = struct{}{}
	s.mu.Unlock()

	var sent model.MessageDTO
	var err error

	switch req.Type {
	case model.MessageText:
		sent, err = s.api.SendText(ctx, req.RoomID, requestID, req.Text)
	case model.MessageImage:
		sent, err = s.api.SendImage(ctx, req.RoomID, requestID, req.FileName, req.File)
	case model.MessageVoice:
		sent, err = s.api.SendVoice(ctx, req.RoomID, requestID, req.FileName, req.File)
	default:
		err = helper.NewUnsupportedOperationError("message type is not supported")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		slog.Warn("Message not delivered", "roomID", req.RoomID, "requestID", requestID, "error", err)
		return s.resolveLocalLocked(req.RoomID, requestID, nil)
	}

	sent.Status = model.StatusDelivered
	sent.LocalID = requestID
	return s.resolveLocalLocked(req.RoomID, requestID, &sent)
}

// ReadMessages scans the room newest to oldest, collecting ids of messages
// from other participants until it hits one the current user already read.
// Read-state is monotonic, so everything older than that point is already
// processed. The collected ids go out as a single mark-read request.
func (s *Store) ReadMessages(ctx context.Context, roomID uuid.UUID) error {
	s.mu.Lock()
	msgs := s.messages[roomID]
	var ids []uuid.UUID
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		if m.SentBy.ID == s.self.ID {
			continue
		}
		if m.ReadByParticipant(s.self.ID) {
			break
		}
		ids = append(ids, m.ID)
	}
	s.mu.Unlock()

	if len(ids) == 0 {
		return nil
	}

	if err := s.api.MarkRead(ctx, roomID, ids); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyReadLocked(roomID, s.self, time.Now(), ids)
	return nil
}

// ApplyNewMessage handles a new-message push event. An event whose request id
// is pending is an echo of this client's own send: the optimistic copy is
// authoritative, so the echo is discarded and the id retired.
func (s *Store) ApplyNewMessage(ev NewMessageEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.RequestID != "" {
		if _, ok := s.pendingEcho[ev.RequestID]; ok {
			delete(s.pendingEcho, ev.RequestID)
			return
		}
	}

	msg := ev.Message
	msg.Status = model.StatusDelivered
	s.messages[ev.RoomID] = append(append([]model.MessageDTO{}, s.messages[ev.RoomID]...), msg)
	s.setLastMessageLocked(ev.RoomID, msg)
}

// ApplyRead handles a read-receipt push event, appending a receipt to every
// listed message. Receipts are append-only and idempotent per participant.
func (s *Store) ApplyRead(ev MessagesReadEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	participant := model.UserDTO{ID: ev.ReadBy.ParticipantID}
	if room, ok := s.roomLocked(ev.RoomID); ok {
		if p, found := room.Participant(ev.ReadBy.ParticipantID); found {
			participant = p
		}
	}

	s.applyReadLocked(ev.RoomID, participant, ev.ReadBy.ReadAt, ev.MessageIDs)
}

func (s *Store) Rooms() []model.RoomDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.RoomDTO{}, s.rooms...)
}

func (s *Store) Messages(roomID uuid.UUID) []model.MessageDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.MessageDTO{}, s.messages[roomID]...)
}

func (s *Store) ChunkState(roomID uuid.UUID) (model.ChunkState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.chunks[roomID]
	return state, ok
}

func (s *Store) resolveLocalLocked(roomID uuid.UUID, localID string, confirmed *model.MessageDTO) model.MessageDTO {
	msgs := append([]model.MessageDTO{}, s.messages[roomID]...)

	idx := -1
	for i := range msgs {
		if msgs[i].LocalID == localID {
			idx = i
			break
		}
	}
	if idx < 0 {
		if confirmed != nil {
			return *confirmed
		}
		return model.MessageDTO{}
	}

	if confirmed == nil {
		msgs[idx].Status = model.StatusUndelivered
	} else {
		msgs[idx] = *confirmed
	}
	s.messages[roomID] = msgs

	if confirmed != nil {
		s.setLastMessageLocked(roomID, *confirmed)
	}
	return msgs[idx]
}

func (s *Store) applyReadLocked(roomID uuid.UUID, participant model.UserDTO, readAt time.Time, ids []uuid.UUID) {
	idSet := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	msgs := append([]model.MessageDTO{}, s.messages[roomID]...)
	for i := range msgs {
		if _, ok := idSet[msgs[i].ID]; !ok {
			continue
		}
		if msgs[i].ReadByParticipant(participant.ID) {
			continue
		}
		msgs[i].ReadBy = append(append([]model.ReadReceipt{}, msgs[i].ReadBy...), model.ReadReceipt{
			Participant: participant,
			ReadAt:      readAt,
		})
	}
	s.messages[roomID] = msgs

	for i := range s.rooms {
		last := s.rooms[i].LastMessage
		if s.rooms[i].ID != roomID || last == nil {
			continue
		}
		if _, ok := idSet[last.ID]; !ok || last.ReadByParticipant(participant.ID) {
			continue
		}
		updated := *last
		updated.ReadBy = append(append([]model.ReadReceipt{}, last.ReadBy...), model.ReadReceipt{
			Participant: participant,
			ReadAt:      readAt,
		})
		s.rooms[i].LastMessage = &updated
	}
}

func (s *Store) setLastMessageLocked(roomID uuid.UUID, msg model.MessageDTO) {
	found := false
	for i := range s.rooms {
		if s.rooms[i].ID == roomID {
			last := msg
			s.rooms[i].LastMessage = &last
			found = true
			break
		}
	}
	if !found {
		slog.Warn("Message event for unknown room", "roomID", roomID)
		return
	}
	s.sortRoomsLocked()
}

func (s *Store) roomLocked(roomID uuid.UUID) (model.RoomDTO, bool) {
	for i := range s.rooms {
		if s.rooms[i].ID == roomID {
			return s.rooms[i], true
		}
	}
	return model.RoomDTO{}, false
}

func (s *Store) sortRoomsLocked() {
	sort.SliceStable(s.rooms, func(i, j int) bool {
		return lastMessageTime(s.rooms[i]).After(lastMessageTime(s.rooms[j]))
	})
}

func lastMessageTime(room model.RoomDTO) time.Time {
	if room.LastMessage == nil {
		return time.Time{}
	}
	return room.LastMessage.CreatedAt
}

func placeholderText(req SendRequest) string {
	switch req.Type {
	case model.MessageImage:
		return "[image]"
	case model.MessageVoice:
		return "[voice]"
	default:
		return req.Text
	}
}
