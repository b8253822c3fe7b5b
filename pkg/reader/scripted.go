package reader

import "sync"

// Scripted is a Reader fed by tests and the simulated terminal.
type Scripted struct {
	lock  sync.Mutex
	queue []Card
}

// Present queues one card presentation.
func (s *Scripted) Present(c Card) {
	s.lock.Lock()
	s.queue = append(s.queue, c)
	s.lock.Unlock()
}

// Poll implements Reader.
func (s *Scripted) Poll() (Card, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if len(s.queue) == 0 {
		return Card{}, false
	}
	c := s.queue[0]
	s.queue = s.queue[1:]
	return c, true
}

var _ Reader = (*Scripted)(nil)
