package sales

import "github.com/mahalpos/pos-api/pkg/logger"

// saga records the undo action of every completed step of a multi-write
// operation. The table store offers no multi-statement atomicity, so when a
// later step fails the completed ones are compensated in reverse order.
// A compensation's own failure is logged, never silently dropped; there is
// nothing further to fall back to.
type saga struct {
	log   *logger.Logger
	undos []undoStep
}

type undoStep struct {
	name string
	fn   func() error
}

func newSaga(log *logger.Logger) *saga {
	return &saga{log: log}
}

// completed records a finished step and how to undo it.
func (s *saga) completed(name string, undo func() error) {
	s.undos = append(s.undos, undoStep{name: name, fn: undo})
}

// compensate undoes completed steps in reverse order.
func (s *saga) compensate() {
	for i := len(s.undos) - 1; i >= 0; i-- {
		step := s.undos[i]
		if err := step.fn(); err != nil {
			s.log.Warn().
				Err(err).
				Str("step", step.name).
				Str("marker", "compensation_failed").
				Msg("failed to undo sales transaction step")
		}
	}
}
