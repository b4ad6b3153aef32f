package command

import (
	"fmt"

	"github.com/pixil98/go-service"
	"github.com/pixil98/go-worldsync/internal/cache"
	"github.com/pixil98/go-worldsync/internal/driver"
	"github.com/pixil98/go-worldsync/internal/placement"
	"github.com/pixil98/go-worldsync/internal/scene"
	"github.com/pixil98/go-worldsync/internal/session"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	local, err := cfg.Session.identity()
	if err != nil {
		return nil, fmt.Errorf("resolving identity: %w", err)
	}

	// Build the session and its cache
	signal := placement.NewSignal()
	c := cache.New(local, cache.WithPlacement(signal))

	sessionOpts, err := cfg.Session.sessionOpts()
	if err != nil {
		return nil, fmt.Errorf("configuring session: %w", err)
	}
	sess := session.New(cfg.World.Tiling, c, sessionOpts...)

	// Setup the frame driver
	sceneOpts, err := cfg.World.sceneOpts()
	if err != nil {
		return nil, fmt.Errorf("configuring scene: %w", err)
	}
	sc := scene.NewManager(c, sceneOpts...)

	driverOpts, err := cfg.driverOpts()
	if err != nil {
		return nil, fmt.Errorf("configuring driver: %w", err)
	}
	drv := driver.NewFrameDriver([]driver.Manager{
		sc,
		&reporter{session: sess, scene: sc, placement: signal},
	}, driverOpts...)

	workers := service.WorkerList{
		"session": sess,
		"driver":  drv,
	}

	url := cfg.Nats.URL
	if cfg.Nats.Embedded {
		srv, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}

		var seeds []seedRows
		if cfg.Nats.SeedPath != "" {
			seeds, err = loadSeeds(cfg.Nats.SeedPath)
			if err != nil {
				return nil, fmt.Errorf("loading seeds: %w", err)
			}
		}

		workers["nats"] = srv
		workers["store"] = &embeddedStore{
			server: srv,
			prefix: cfg.Nats.prefix(),
			seeds:  seeds,
			local:  local,
			tiling: cfg.World.Tiling,
		}
		url = srv.ClientURL()
	}

	workers["connector"] = session.NewConnector(url, cfg.Nats.prefix(), sess)

	return workers, nil
}
