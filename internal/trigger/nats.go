package trigger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/gridhook-systems/gridhook/internal/logging"
)

// gridEventPayload is the Event Grid event schema as published on the
// push subject.
type gridEventPayload struct {
	ID        string          `json:"id"`
	Topic     string          `json:"topic"`
	Subject   string          `json:"subject"`
	EventType string          `json:"eventType"`
	EventTime string          `json:"eventTime"`
	Data      json.RawMessage `json:"data"`
}

// natsEvent adapts a decoded payload to the Event interface.
type natsEvent struct {
	payload gridEventPayload
}

func (e natsEvent) ID() string      { return e.payload.ID }
func (e natsEvent) Source() string  { return e.payload.Topic }
func (e natsEvent) Subject() string { return e.payload.Subject }
func (e natsEvent) Type() string    { return e.payload.EventType }
func (e natsEvent) Time() string    { return e.payload.EventTime }

func (e natsEvent) JSONBody() ([]byte, error) {
	return e.payload.Data, nil
}

// SubscriberConfig holds NATS subscription settings.
type SubscriberConfig struct {
	URL     string
	Subject string
	Queue   string
}

// Subscriber consumes push events from a NATS queue subscription and
// feeds them to the trigger handler. Handler errors are logged; whether a
// failed delivery comes back is the broker's redelivery policy.
type Subscriber struct {
	conn    *nats.Conn
	sub     *nats.Subscription
	handler *Handler
	logger  *logging.Logger
	subject string
	queue   string
}

// NewSubscriber connects to NATS. Call Start to begin consuming.
func NewSubscriber(cfg SubscriberConfig, handler *Handler, logger *logging.Logger) (*Subscriber, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name("gridhook"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return &Subscriber{
		conn:    conn,
		handler: handler,
		logger:  logger,
		subject: cfg.Subject,
		queue:   cfg.Queue,
	}, nil
}

// Start creates the queue subscription.
func (s *Subscriber) Start() error {
	sub, err := s.conn.QueueSubscribe(s.subject, s.queue, func(msg *nats.Msg) {
		var payload gridEventPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			s.logger.Logger.Warn("dropping undecodable push event",
				logging.Error(err),
				logging.Subject(msg.Subject),
			)
			return
		}

		if err := s.handler.Handle(context.Background(), natsEvent{payload: payload}); err != nil {
			s.logger.Logger.Error("push event handling failed",
				logging.EventID(payload.ID),
				logging.EventType(payload.EventType),
				logging.Error(err),
			)
		}
	})
	if err != nil {
		return err
	}

	s.sub = sub
	return nil
}

// Close drains the subscription and connection.
func (s *Subscriber) Close() error {
	if s.sub != nil {
		_ = s.sub.Unsubscribe()
	}
	return s.conn.Drain()
}

// IsConnected reports whether the NATS connection is up.
func (s *Subscriber) IsConnected() bool {
	return s.conn.IsConnected()
}
