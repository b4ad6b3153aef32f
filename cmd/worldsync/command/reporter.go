package command

import (
	"context"
	"log/slog"

	"github.com/pixil98/go-worldsync/internal/placement"
	"github.com/pixil98/go-worldsync/internal/scene"
	"github.com/pixil98/go-worldsync/internal/session"
)

// reporter stands in for the client UI. Once per frame it logs connection
// changes and placement cancellations.
type reporter struct {
	session   *session.Session
	scene     *scene.Manager
	placement *placement.Signal

	last session.Status
}

func (r *reporter) Tick(ctx context.Context) error {
	select {
	case <-r.placement.C():
		slog.InfoContext(ctx, "placement cancelled")
	default:
	}

	st := r.session.Status()
	if st.State != r.last.State || st.PlayerRegistered != r.last.PlayerRegistered || st.Chunks != r.last.Chunks {
		slog.InfoContext(ctx, "session status",
			"state", st.State.String(),
			"instance", st.Instance,
			"chunks", st.Chunks,
			"player_registered", st.PlayerRegistered,
			"players", len(r.scene.Players()),
			"clouds", len(r.scene.Clouds()),
			"error", st.Err,
		)
	}
	r.last = st
	return nil
}
