package chat

import (
	"PraxisAdminClient/internal/config"
	"PraxisAdminClient/internal/helper"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

// Subscriber owns the push-channel connection. A single reader goroutine
// dispatches frames to the store in arrival order, which preserves the
// transport's per-topic ordering guarantee.
type Subscriber struct {
	cfg   *config.AppConfig
	store *Store
	self  uuid.UUID
}

func NewSubscriber(cfg *config.AppConfig, store *Store, self uuid.UUID) *Subscriber {
	return &Subscriber{
		cfg:   cfg,
		store: store,
		self:  self,
	}
}

type subscribeFrame struct {
	Subscribe []string `json:"subscribe"`
}

// Run dials the push channel and reads frames until the context is canceled
// or the connection drops. Dialing retries with backoff; established
// connections are not re-established here, the caller decides whether to
// call Run again.
func (s *Subscriber) Run(ctx context.Context) error {
	conn, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	topics := []string{InboxTopic(s.self), ReadTopic(s.self)}
	if err := conn.WriteJSON(subscribeFrame{Subscribe: topics}); err != nil {
		return helper.NewTransportError(err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return helper.NewTransportError(err)
		}
		s.dispatch(data)
	}
}

func (s *Subscriber) dial(ctx context.Context) (*ws.Conn, error) {
	dialURL := s.cfg.WSBaseURL + "/ws"
	header := http.Header{}
	header.Set("Authorization", "Bearer "+s.cfg.APIToken)

	baseDelay := time.Duration(s.cfg.WSDialBaseDelayMS) * time.Millisecond

	conn, err := helper.RetryWithBackoff(ctx, func() (*ws.Conn, bool, error) {
		conn, resp, err := ws.DefaultDialer.DialContext(ctx, dialURL, header)
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusUnauthorized {
				return nil, false, helper.NewUnauthorizedError("")
			}
			return nil, true, err
		}
		return conn, false, nil
	}, s.cfg.WSDialMaxRetries, baseDelay)

	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (s *Subscriber) dispatch(data []byte) {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		slog.Warn("Failed to decode push frame", "error", err)
		return
	}

	switch frame.Topic {
	case InboxTopic(s.self):
		var ev NewMessageEvent
		if err := json.Unmarshal(frame.Body, &ev); err != nil {
			slog.Warn("Failed to decode new-message event", "error", err)
			return
		}
		s.store.ApplyNewMessage(ev)

	case ReadTopic(s.self):
		var ev MessagesReadEvent
		if err := json.Unmarshal(frame.Body, &ev); err != nil {
			slog.Warn("Failed to decode read event", "error", err)
			return
		}
		s.store.ApplyRead(ev)

	default:
		slog.Debug("Ignoring frame for unexpected topic", "topic", frame.Topic)
	}
}
