package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-worldsync/internal/chunk"
	"github.com/pixil98/go-worldsync/internal/scene"
)

// WorldConfig carries the constants shared with the server. They must match
// it exactly.
type WorldConfig struct {
	chunk.Tiling

	CloudInterval     string `json:"cloud_interval"`
	KnockbackDuration string `json:"knockback_duration"`
}

func (w *WorldConfig) validate() error {
	el := errors.NewErrorList()

	if err := w.Tiling.Validate(); err != nil {
		el.Add(fmt.Errorf("world: %w", err))
	}
	if _, _, err := parseOptionalDuration("cloud_interval", w.CloudInterval); err != nil {
		el.Add(err)
	}
	if _, _, err := parseOptionalDuration("knockback_duration", w.KnockbackDuration); err != nil {
		el.Add(err)
	}

	return el.Err()
}

func (w *WorldConfig) sceneOpts() ([]scene.ManagerOpt, error) {
	var opts []scene.ManagerOpt

	d, ok, err := parseOptionalDuration("cloud_interval", w.CloudInterval)
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, scene.WithCloudInterval(d))
	}

	d, ok, err = parseOptionalDuration("knockback_duration", w.KnockbackDuration)
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, scene.WithKnockbackDuration(d))
	}

	return opts, nil
}
