package bootstrap

import (
	"PraxisAdminClient/internal/adapter"
	"PraxisAdminClient/internal/chat"
	"PraxisAdminClient/internal/config"
	"PraxisAdminClient/internal/helper"
	"PraxisAdminClient/internal/model"
	"PraxisAdminClient/internal/resource"
	"bytes"
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SDK bundles the typed resource clients of the admin surface plus the chat
// REST API. Each client implements the full contract; consumers that only
// need a subset probe capabilities instead of depending on the whole type.
type SDK struct {
	Users        *resource.Client[model.UserDTO, model.UserUpsertRequest, uuid.UUID, model.UserFilter]
	Appointments *resource.Client[model.AppointmentDTO, model.AppointmentUpsertRequest, uuid.UUID, model.AppointmentFilter]
	Tips         *resource.Client[model.TipDTO, model.TipUpsertRequest, uuid.UUID, model.TipFilter]
	Posts        *resource.Client[model.PostDTO, model.PostUpsertRequest, uuid.UUID, model.PostFilter]
	Didactics    *resource.Client[model.DidacticDTO, model.DidacticUpsertRequest, uuid.UUID, model.DidacticFilter]
	Chat         *chat.API
}

func Init(cfg *config.AppConfig, httpClient *http.Client, validate *validator.Validate) *SDK {
	rest := adapter.NewRestAdapter(cfg, httpClient)

	didactics := resource.NewClient[model.DidacticDTO, model.DidacticUpsertRequest, uuid.UUID, model.DidacticFilter](rest, "/didactics", validate).
		WithCreateEncoder(encodeDidacticUpload)

	return &SDK{
		Users:        resource.NewClient[model.UserDTO, model.UserUpsertRequest, uuid.UUID, model.UserFilter](rest, "/users", validate),
		Appointments: resource.NewClient[model.AppointmentDTO, model.AppointmentUpsertRequest, uuid.UUID, model.AppointmentFilter](rest, "/appointments", validate),
		Tips:         resource.NewClient[model.TipDTO, model.TipUpsertRequest, uuid.UUID, model.TipFilter](rest, "/tips", validate),
		Posts:        resource.NewClient[model.PostDTO, model.PostUpsertRequest, uuid.UUID, model.PostFilter](rest, "/posts", validate),
		Didactics:    didactics,
		Chat:         chat.NewAPI(rest),
	}
}

// OpenChat builds the chat state for the current user: the room list is
// fetched eagerly, the returned store is handed to the chat views, and the
// subscriber feeds it push events until the caller's context ends.
func OpenChat(ctx context.Context, cfg *config.AppConfig, sdk *SDK) (*chat.Store, *chat.Subscriber, error) {
	selfID, err := helper.ParticipantIDFromToken(cfg.APIToken)
	if err != nil {
		return nil, nil, err
	}

	rooms, err := sdk.Chat.Rooms(ctx)
	if err != nil {
		return nil, nil, err
	}

	self := model.UserDTO{ID: selfID}
	for _, room := range rooms {
		if p, ok := room.Participant(selfID); ok {
			self = p
			break
		}
	}

	store := chat.NewStore(sdk.Chat, self, rooms)
	subscriber := chat.NewSubscriber(cfg, store, selfID)
	return store, subscriber, nil
}

func encodeDidacticUpload(dto model.DidacticUpsertRequest) (adapter.MultipartPayload, error) {
	return adapter.MultipartPayload{
		Fields: map[string]string{
			"title":    dto.Title,
			"category": dto.Category,
		},
		FieldName: "file",
		FileName:  dto.FileName,
		File:      bytes.NewReader(dto.Content),
	}, nil
}
