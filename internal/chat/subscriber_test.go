package chat

import (
	"PraxisAdminClient/internal/config"
	"PraxisAdminClient/internal/model"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

var testUpgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func TestSubscriberAppliesFramesInOrder(t *testing.T) {
	room := testRoom("Praxisteam", nil)
	incoming := serverMessage(otherUser, "Hallo", time.Date(2026, 9, 1, 17, 0, 0, 0, time.UTC))

	var receivedAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuth = r.Header.Get("Authorization")

		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		var sub subscribeFrame
		require.NoError(t, conn.ReadJSON(&sub))
		assert.Equal(t, []string{InboxTopic(selfUser.ID), ReadTopic(selfUser.ID)}, sub.Subscribe)

		require.NoError(t, conn.WriteJSON(Frame{
			Topic: InboxTopic(selfUser.ID),
			Body:  mustJSON(t, NewMessageEvent{Message: incoming, RoomID: room.ID}),
		}))
		require.NoError(t, conn.WriteJSON(Frame{
			Topic: ReadTopic(selfUser.ID),
			Body: mustJSON(t, MessagesReadEvent{
				RoomID:     room.ID,
				ReadBy:     ReadByEvent{ParticipantID: otherUser.ID, ReadAt: time.Now()},
				MessageIDs: []uuid.UUID{incoming.ID},
			}),
		}))

		_ = conn.WriteMessage(ws.CloseMessage, ws.FormatCloseMessage(ws.CloseNormalClosure, ""))
	}))
	defer server.Close()

	cfg := &config.AppConfig{
		WSBaseURL:         "ws" + strings.TrimPrefix(server.URL, "http"),
		APIToken:          "test-token",
		WSDialMaxRetries:  1,
		WSDialBaseDelayMS: 10,
	}

	store := newTestStore(t, newChatRouter(), []model.RoomDTO{room})
	subscriber := NewSubscriber(cfg, store, selfUser.ID)

	err := subscriber.Run(context.Background())
	assert.Error(t, err, "server close surfaces as a transport error")

	assert.Equal(t, "Bearer test-token", receivedAuth)

	msgs := store.Messages(room.ID)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Hallo", msgs[0].Message)
	assert.True(t, msgs[0].ReadByParticipant(otherUser.ID), "read receipt applied after the message")
}
