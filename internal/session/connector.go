package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-worldsync/internal/messaging"
)

const DefaultRetryInterval = 2 * time.Second

type linkEvent struct {
	up  bool
	err error
}

// Connector dials the store and keeps the session in step with the state of
// the connection.
type Connector struct {
	url     string
	prefix  string
	session *Session

	name          string
	retryInterval time.Duration
}

func NewConnector(url, prefix string, s *Session, opts ...ConnectorOpt) *Connector {
	c := &Connector{
		url:           url,
		prefix:        prefix,
		session:       s,
		name:          "worldsync",
		retryInterval: DefaultRetryInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Connector) Start(ctx context.Context) error {
	links := make(chan linkEvent, 16)
	notify := func(ev linkEvent) {
		select {
		case links <- ev:
		case <-ctx.Done():
		}
	}

	client, err := c.dial(ctx, notify)
	if err != nil {
		return err
	}
	if client == nil {
		return nil
	}
	defer client.Close()

	if err := c.session.Connect(ctx, client); err != nil {
		return fmt.Errorf("connecting session: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-links:
			var err error
			if ev.up {
				err = c.session.Connect(ctx, client)
			} else {
				err = c.session.Disconnect(ctx, ev.err)
			}
			if err != nil && ctx.Err() == nil {
				return fmt.Errorf("updating session: %w", err)
			}
		}
	}
}

// dial retries until the server answers. It returns a nil client if ctx ends
// first.
func (c *Connector) dial(ctx context.Context, notify func(linkEvent)) (*messaging.Client, error) {
	for {
		client, err := messaging.Dial(c.url, c.prefix,
			messaging.WithName(c.name),
			messaging.WithDisconnectHandler(func(err error) {
				notify(linkEvent{err: err})
			}),
			messaging.WithReconnectHandler(func() {
				notify(linkEvent{up: true})
			}),
		)
		if err == nil {
			return client, nil
		}

		slog.WarnContext(ctx, "dialing store", "url", c.url, "error", err)
		if err := c.session.Disconnect(ctx, err); err != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("recording dial failure: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, nil
		case <-time.After(c.retryInterval):
		}
	}
}
