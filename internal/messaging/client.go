package messaging

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-worldsync/internal/store"
	"github.com/vmihailenco/msgpack/v5"
)

const defaultBufferSize = 4096

// Client is a store connection over nats. All subscriptions share one
// message channel, so events come out in the order the connection received
// them.
type Client struct {
	conn     *nats.Conn
	subjects Subjects

	msgs   chan *nats.Msg
	events chan store.Event
	done   chan struct{}
	once   sync.Once

	bufferSize   int
	name         string
	onDisconnect func(error)
	onReconnect  func()
}

// Dial connects to the nats server at url.
func Dial(url string, prefix string, opts ...ClientOpt) (*Client, error) {
	c := &Client{
		subjects:   Subjects{Prefix: prefix},
		done:       make(chan struct{}),
		bufferSize: defaultBufferSize,
		name:       "worldsync",
	}

	for _, opt := range opts {
		opt(c)
	}

	c.msgs = make(chan *nats.Msg, c.bufferSize)
	c.events = make(chan store.Event, c.bufferSize)

	conn, err := nats.Connect(url,
		nats.Name(c.name),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if c.onDisconnect != nil {
				c.onDisconnect(err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if c.onReconnect != nil {
				c.onReconnect()
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}
	c.conn = conn

	go c.pump()

	return c, nil
}

func (c *Client) pump() {
	for {
		select {
		case <-c.done:
			close(c.events)
			return
		case msg := <-c.msgs:
			ev, err := store.DecodeEvent(msg.Data)
			if err != nil {
				slog.Warn("dropping malformed event", "subject", msg.Subject, "error", err)
				continue
			}
			select {
			case c.events <- ev:
			case <-c.done:
				close(c.events)
				return
			}
		}
	}
}

// Events is closed after Close.
func (c *Client) Events() <-chan store.Event {
	return c.events
}

// Subscribe starts listening for rows selected by q and asks the store to
// replay the rows that already match. The replay is best effort; a failure
// to request it is logged.
func (c *Client) Subscribe(q store.Query) (store.Handle, error) {
	subject := c.subjects.Query(q)
	sub, err := c.conn.ChanSubscribe(subject, c.msgs)
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", subject, err)
	}

	req, err := msgpack.Marshal(&SubscribeRequest{ID: uuid.NewString(), Query: q})
	if err != nil {
		slog.Warn("encoding subscribe request", "query", q.String(), "error", err)
	} else if err := c.conn.Publish(c.subjects.Subscribe(), req); err != nil {
		slog.Warn("requesting initial rows", "query", q.String(), "error", err)
	}

	return &handle{sub: sub, query: q}, nil
}

// Flush waits for the server to process everything sent so far.
func (c *Client) Flush() error {
	return c.conn.Flush()
}

// Connected reports whether the underlying connection is up.
func (c *Client) Connected() bool {
	return c.conn.IsConnected()
}

// Close tears down the connection. It is safe to call more than once.
func (c *Client) Close() {
	c.once.Do(func() {
		c.conn.Close()
		close(c.done)
	})
}

type handle struct {
	sub   *nats.Subscription
	query store.Query
	done  atomic.Bool
}

func (h *handle) Query() store.Query {
	return h.query
}

// Unsubscribe releases the subscription. Releasing a handle that is already
// inert, whether by an earlier call or a closed connection, is not an error.
func (h *handle) Unsubscribe() error {
	if !h.done.CompareAndSwap(false, true) {
		return nil
	}
	err := h.sub.Unsubscribe()
	if err == nil || errors.Is(err, nats.ErrBadSubscription) || errors.Is(err, nats.ErrConnectionClosed) {
		return nil
	}
	return fmt.Errorf("unsubscribing %s: %w", h.sub.Subject, err)
}
