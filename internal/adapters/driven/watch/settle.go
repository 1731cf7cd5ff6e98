package watch

import "time"

// settled reports that a path went quiet. gen identifies the schedule
// call that produced it.
type settled struct {
	path string
	gen  uint64
}

type pendingFile struct {
	timer *time.Timer
	gen   uint64
}

// settler debounces file events per path. Every new event replaces the
// path's timer under a fresh generation, and only the latest generation
// is accepted, so a timer that already fired before being replaced
// cannot emit the path a second time.
type settler struct {
	delay   time.Duration
	ready   chan settled
	done    chan struct{}
	pending map[string]pendingFile
	gen     uint64
}

func newSettler(delay time.Duration) *settler {
	return &settler{
		delay:   delay,
		ready:   make(chan settled),
		done:    make(chan struct{}),
		pending: make(map[string]pendingFile),
	}
}

// schedule (re)starts the quiet period for path.
func (s *settler) schedule(path string) {
	if p, ok := s.pending[path]; ok {
		p.timer.Stop()
	}
	s.gen++
	msg := settled{path: path, gen: s.gen}
	s.pending[path] = pendingFile{
		gen: msg.gen,
		timer: time.AfterFunc(s.delay, func() {
			select {
			case s.ready <- msg:
			case <-s.done:
			}
		}),
	}
}

// accept reports whether msg is the current generation for its path and
// clears the path if so. Stale and repeated messages return false.
func (s *settler) accept(msg settled) bool {
	p, ok := s.pending[msg.path]
	if !ok || p.gen != msg.gen {
		return false
	}
	delete(s.pending, msg.path)
	return true
}

// stop cancels every pending timer and releases fired ones still waiting
// to deliver.
func (s *settler) stop() {
	close(s.done)
	for _, p := range s.pending {
		p.timer.Stop()
	}
}
