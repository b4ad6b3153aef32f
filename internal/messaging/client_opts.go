package messaging

type ClientOpt func(*Client)

// WithBufferSize sets how many undelivered messages the client queues before
// nats starts dropping them as a slow consumer.
func WithBufferSize(n int) ClientOpt {
	return func(c *Client) {
		c.bufferSize = n
	}
}

// WithName sets the connection name reported to the server.
func WithName(name string) ClientOpt {
	return func(c *Client) {
		c.name = name
	}
}

// WithDisconnectHandler is called from a nats goroutine when the connection
// drops.
func WithDisconnectHandler(fn func(error)) ClientOpt {
	return func(c *Client) {
		c.onDisconnect = fn
	}
}

// WithReconnectHandler is called from a nats goroutine when the connection
// has been re-established.
func WithReconnectHandler(fn func()) ClientOpt {
	return func(c *Client) {
		c.onReconnect = fn
	}
}
