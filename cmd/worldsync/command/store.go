package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-worldsync/internal/chunk"
	"github.com/pixil98/go-worldsync/internal/entity"
	"github.com/pixil98/go-worldsync/internal/identity"
	"github.com/pixil98/go-worldsync/internal/messaging"
)

// embeddedStore serves an in-memory store on the embedded broker once it is
// up. The local player is spawned at the centre of the world unless a seed
// already placed it.
type embeddedStore struct {
	server *messaging.NatsServer
	prefix string
	seeds  []seedRows
	local  identity.Identity
	tiling chunk.Tiling
}

func (s *embeddedStore) Start(ctx context.Context) error {
	select {
	case <-s.server.Ready():
	case <-ctx.Done():
		return nil
	}

	conn, err := nats.Connect(s.server.ClientURL(), nats.Name("worldsync-store"))
	if err != nil {
		return fmt.Errorf("connecting store: %w", err)
	}
	defer conn.Close()

	rs := messaging.NewRowStore(conn, s.prefix)
	n := 0
	for _, seed := range s.seeds {
		for _, row := range seed.rows {
			if err := rs.Insert(seed.table, row); err != nil {
				return fmt.Errorf("seeding %s: %w", seed.table, err)
			}
			n++
		}
	}

	w := s.tiling.Size * float64(s.tiling.Width)
	h := s.tiling.Size * float64(s.tiling.Height)
	spawn := entity.Player{
		Identity: s.local.String(),
		Username: "local",
		Position: entity.Position{X: float32(w / 2), Y: float32(h / 2)},
		Health:   100,
		IsOnline: true,
	}
	if err := rs.Insert(entity.TablePlayer, spawn); err != nil && !errors.Is(err, messaging.ErrRowExists) {
		return fmt.Errorf("spawning local player: %w", err)
	}

	slog.InfoContext(ctx, "embedded store ready", "rows", n, "identity", s.local.String())
	return rs.Start(ctx)
}
