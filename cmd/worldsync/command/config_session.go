package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-worldsync/internal/identity"
	"github.com/pixil98/go-worldsync/internal/session"
)

type SessionConfig struct {
	// Token derives the local identity. Identity, a hex string, takes
	// precedence when both are set.
	Token    string `json:"token"`
	Identity string `json:"identity"`

	ViewWidth     float64 `json:"view_width"`
	ViewHeight    float64 `json:"view_height"`
	ViewBuffer    float64 `json:"view_buffer"`
	MoveThreshold float64 `json:"move_threshold"`
	Debounce      string  `json:"debounce"`
}

func (c *SessionConfig) validate() error {
	el := errors.NewErrorList()

	if c.Token == "" && c.Identity == "" {
		el.Add(fmt.Errorf("one of token or identity is required"))
	}
	if c.Identity != "" {
		if _, err := identity.Parse(c.Identity); err != nil {
			el.Add(fmt.Errorf("identity: %w", err))
		}
	}
	if c.ViewWidth < 0 || c.ViewHeight < 0 || c.ViewBuffer < 0 {
		el.Add(fmt.Errorf("view dimensions must not be negative"))
	}
	if c.MoveThreshold < 0 {
		el.Add(fmt.Errorf("move_threshold must not be negative"))
	}
	if _, _, err := parseOptionalDuration("debounce", c.Debounce); err != nil {
		el.Add(err)
	}

	return el.Err()
}

func (c *SessionConfig) identity() (identity.Identity, error) {
	if c.Identity != "" {
		return identity.Parse(c.Identity)
	}
	return identity.FromToken(c.Token), nil
}

func (c *SessionConfig) sessionOpts() ([]session.SessionOpt, error) {
	var opts []session.SessionOpt

	if c.ViewWidth > 0 || c.ViewHeight > 0 || c.ViewBuffer > 0 {
		w, h, b := c.ViewWidth, c.ViewHeight, c.ViewBuffer
		if w == 0 {
			w = session.DefaultViewWidth
		}
		if h == 0 {
			h = session.DefaultViewHeight
		}
		if b == 0 {
			b = session.DefaultViewBuffer
		}
		opts = append(opts, session.WithView(w, h, b))
	}
	if c.MoveThreshold > 0 {
		opts = append(opts, session.WithMoveThreshold(c.MoveThreshold))
	}

	d, ok, err := parseOptionalDuration("debounce", c.Debounce)
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, session.WithDebounce(d))
	}

	return opts, nil
}
