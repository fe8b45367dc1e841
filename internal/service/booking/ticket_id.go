package booking

import (
	"math/rand"
	"sync"
	"time"
)

// ticketSource issues ticket ids derived from the creation time in
// milliseconds, widened with random low digits and forced strictly
// increasing. Bare millisecond timestamps collide under concurrent
// bookings; this keeps ids time-ordered without that risk.
type ticketSource struct {
	mu   sync.Mutex
	last int64
	rnd  *rand.Rand
}

func newTicketSource() *ticketSource {
	return &ticketSource{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (t *ticketSource) Next() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := time.Now().UnixMilli()*1000 + int64(t.rnd.Intn(1000))
	if id <= t.last {
		id = t.last + 1
	}
	t.last = id
	return id
}
