package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-worldsync/internal/driver"
)

type Config struct {
	FrameInterval string        `json:"frame_interval"`
	Nats          NatsConfig    `json:"nats"`
	World         WorldConfig   `json:"world"`
	Session       SessionConfig `json:"session"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.FrameInterval != "" {
		d, err := time.ParseDuration(c.FrameInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing frame_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("frame_interval must be positive"))
		}
	}

	el.Add(c.Nats.validate())
	el.Add(c.World.validate())
	el.Add(c.Session.validate())

	return el.Err()
}

func (c *Config) driverOpts() ([]driver.FrameDriverOpt, error) {
	var opts []driver.FrameDriverOpt
	if c.FrameInterval != "" {
		d, err := time.ParseDuration(c.FrameInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing frame_interval: %w", err)
		}
		opts = append(opts, driver.WithFrameInterval(d))
	}
	return opts, nil
}

// parseOptionalDuration parses s when it is set.
func parseOptionalDuration(name, s string) (time.Duration, bool, error) {
	if s == "" {
		return 0, false, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, false, fmt.Errorf("parsing %s: %w", name, err)
	}
	return d, true, nil
}
