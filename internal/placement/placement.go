package placement

// Canceler is told to leave placement-preview mode. Implementations must not
// block: it is called from inside cache mutation.
type Canceler interface {
	CancelPlacement()
}

// Nop ignores cancellations.
type Nop struct{}

func (Nop) CancelPlacement() {}

// Signal delivers cancellations on a channel. Repeated cancellations before
// the collaborator drains the channel collapse into one.
type Signal struct {
	c chan struct{}
}

func NewSignal() *Signal {
	return &Signal{c: make(chan struct{}, 1)}
}

func (s *Signal) CancelPlacement() {
	select {
	case s.c <- struct{}{}:
	default:
	}
}

// C is received from by the placement collaborator.
func (s *Signal) C() <-chan struct{} {
	return s.c
}
