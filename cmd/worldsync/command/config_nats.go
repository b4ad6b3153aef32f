package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-worldsync/internal/messaging"
)

const defaultSubjectPrefix = "world"

type NatsConfig struct {
	URL           string `json:"url"`
	SubjectPrefix string `json:"subject_prefix"`

	// Embedded runs a broker and an in-memory store in process.
	Embedded     bool   `json:"embedded"`
	Host         string `json:"host"`
	Port         int    `json:"port"`
	StartTimeout string `json:"start_timeout"`
	SeedPath     string `json:"seed_path"`
}

func (n *NatsConfig) validate() error {
	el := errors.NewErrorList()

	if n.StartTimeout != "" {
		_, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing start_timeout: %w", err))
		}
	}

	if !n.Embedded && n.URL == "" {
		el.Add(fmt.Errorf("url is required unless embedded is set"))
	}
	// The connector dials the embedded broker before it has bound a port.
	if n.Embedded && n.Port < 0 {
		el.Add(fmt.Errorf("port must be fixed when embedded"))
	}
	if n.SeedPath != "" && !n.Embedded {
		el.Add(fmt.Errorf("seed_path requires embedded"))
	}

	return el.Err()
}

func (n *NatsConfig) prefix() string {
	if n.SubjectPrefix == "" {
		return defaultSubjectPrefix
	}
	return n.SubjectPrefix
}

func (c *NatsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	var opts []messaging.NatsServerOpt
	if c.StartTimeout != "" {
		d, err := time.ParseDuration(c.StartTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing start_timeout: %w", err)
		}
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if c.Host != "" {
		opts = append(opts, messaging.WithHost(c.Host))
	}
	if c.Port != 0 {
		opts = append(opts, messaging.WithPort(c.Port))
	}

	s, err := messaging.NewNatsServer(opts...)
	if err != nil {
		return nil, err
	}

	return s, nil
}
