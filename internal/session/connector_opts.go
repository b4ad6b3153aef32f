package session

import "time"

type ConnectorOpt func(*Connector)

// WithRetryInterval sets the pause between failed dial attempts.
func WithRetryInterval(d time.Duration) ConnectorOpt {
	return func(c *Connector) {
		c.retryInterval = d
	}
}

// WithConnectionName sets the name the connection reports to the server.
func WithConnectionName(name string) ConnectorOpt {
	return func(c *Connector) {
		c.name = name
	}
}
