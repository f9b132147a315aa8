package queue

import "github.com/viant/loopq/model/message"

// Dump logs the pending list in due order, ticking the entry that matches
// marker. Purely observational; queue state is unchanged.
func (q *Queue) Dump(marker *message.Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := 0; i < q.pending.len(); i++ {
		m := q.pending.at(i)
		tick := " "
		if m == marker {
			tick = ">"
		}
		q.logger.Debug().
			Str("tick", tick).
			Int("index", i).
			Uint32("kind", uint32(m.Kind)).
			Str("id", m.ID).
			Time("due", m.Due).
			Msg("pending")
	}
}
