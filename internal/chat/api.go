package chat

import (
	"PraxisAdminClient/internal/adapter"
	"PraxisAdminClient/internal/model"
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/google/uuid"
)

// API covers the chat REST endpoints. The push channel (Subscriber) is the
// other half of the transport; both feed the same Store.
type API struct {
	rest *adapter.RestAdapter
}

func NewAPI(rest *adapter.RestAdapter) *API {
	return &API{rest: rest}
}

func (a *API) Rooms(ctx context.Context) ([]model.RoomDTO, error) {
	var rooms []model.RoomDTO
	err := a.rest.Get(ctx, "/chat/rooms", nil, &rooms)
	return rooms, err
}

func (a *API) Room(ctx context.Context, roomID uuid.UUID) (model.RoomDTO, error) {
	var room model.RoomDTO
	err := a.rest.Get(ctx, fmt.Sprintf("/chat/room/%s", roomID), nil, &room)
	return room, err
}

func (a *API) LastMessage(ctx context.Context, roomID uuid.UUID) (model.MessageDTO, error) {
	var msg model.MessageDTO
	err := a.rest.Get(ctx, fmt.Sprintf("/chat/room/%s/message/last", roomID), nil, &msg)
	return msg, err
}

// ChunkCount returns the number of history chunks the server holds for the
// room. Chunks are numbered oldest-first from 1; the highest-numbered chunk
// is the slab of history right before the initially loaded page.
func (a *API) ChunkCount(ctx context.Context, roomID uuid.UUID) (int, error) {
	var count int
	err := a.rest.Get(ctx, fmt.Sprintf("/chat/room/%s/chunks", roomID), nil, &count)
	return count, err
}

func (a *API) Chunk(ctx context.Context, roomID uuid.UUID, number int) ([]model.MessageDTO, error) {
	var messages []model.MessageDTO
	err := a.rest.Get(ctx, fmt.Sprintf("/chat/room/%s/chunk/%d", roomID, number), nil, &messages)
	return messages, err
}

func (a *API) SendText(ctx context.Context, roomID uuid.UUID, requestID string, text string) (model.MessageDTO, error) {
	body := map[string]string{"message": text}

	var msg model.MessageDTO
	err := a.rest.Post(ctx, fmt.Sprintf("/chat/send/%s", roomID), requestQuery(requestID), body, &msg)
	return msg, err
}

func (a *API) SendImage(ctx context.Context, roomID uuid.UUID, requestID string, fileName string, file io.Reader) (model.MessageDTO, error) {
	return a.sendUpload(ctx, fmt.Sprintf("/chat/send/%s/image", roomID), requestID, fileName, file)
}

func (a *API) SendVoice(ctx context.Context, roomID uuid.UUID, requestID string, fileName string, file io.Reader) (model.MessageDTO, error) {
	return a.sendUpload(ctx, fmt.Sprintf("/chat/send/%s/voice", roomID), requestID, fileName, file)
}

func (a *API) MarkRead(ctx context.Context, roomID uuid.UUID, messageIDs []uuid.UUID) error {
	return a.rest.Put(ctx, fmt.Sprintf("/chat/room/%s/read", roomID), messageIDs, nil)
}

func (a *API) sendUpload(ctx context.Context, path string, requestID string, fileName string, file io.Reader) (model.MessageDTO, error) {
	payload := adapter.MultipartPayload{
		FieldName: "file",
		FileName:  fileName,
		File:      file,
	}

	var msg model.MessageDTO
	err := a.rest.PostMultipart(ctx, path, requestQuery(requestID), payload, &msg)
	return msg, err
}

func requestQuery(requestID string) url.Values {
	query := url.Values{}
	query.Set("requestId", requestID)
	return query
}
