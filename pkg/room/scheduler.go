package room

import "time"

// turnScheduler runs one countdown per room
// It must only be used from the dealer's run loop. The timer callback does not touch the
// scheduler, it posts back into the run loop where the sequence number weeds out stale timers.
type turnScheduler struct {
	timer    *time.Timer
	seq      uint64
	deadline time.Time
	fire     func(seq uint64, turn int)
}

func newTurnScheduler(fire func(seq uint64, turn int)) *turnScheduler {
	return &turnScheduler{fire: fire}
}

// schedule replaces any running countdown
func (s *turnScheduler) schedule(turn int, after time.Duration) {
	s.stop()

	s.seq++
	seq := s.seq
	s.deadline = time.Now().Add(after)
	s.timer = time.AfterFunc(after, func() {
		s.fire(seq, turn)
	})
}

func (s *turnScheduler) stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	s.deadline = time.Time{}
}

// current returns true if seq belongs to the running countdown
func (s *turnScheduler) current(seq uint64) bool {
	return s.timer != nil && seq == s.seq
}
