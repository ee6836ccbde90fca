package push

import (
	"context"

	"github.com/nats-io/nats.go"
)

const natsQueue = "elitebuilders-client"

// NATSSource subscribes to a NATS subject in a queue group.
type NATSSource struct {
	conn    *nats.Conn
	subject string
}

// NewNATSSource returns a source reading subject.
func NewNATSSource(conn *nats.Conn, subject string) *NATSSource {
	return &NATSSource{conn: conn, subject: subject}
}

func (s *NATSSource) Name() string { return "nats" }

func (s *NATSSource) Run(ctx context.Context, handle Handler) error {
	sub, err := s.conn.QueueSubscribe(s.subject, natsQueue, func(msg *nats.Msg) {
		handle(msg.Data)
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return err
	}
	return ctx.Err()
}
