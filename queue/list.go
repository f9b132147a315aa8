package queue

import (
	"sort"

	"github.com/viant/loopq/model/message"
)

// orderedList keeps pending messages sorted ascending by due time. Entries
// with equal due times retain post order: a new entry goes after existing
// entries with the same due time.
//
// The list is not safe for concurrent use; the owning queue's lock guards
// every call.
type orderedList struct {
	items []*message.Message
}

// insert places m immediately before the first element whose due time is
// strictly greater than m's.
func (l *orderedList) insert(m *message.Message) {
	i := sort.Search(len(l.items), func(i int) bool {
		return l.items[i].Due.After(m.Due)
	})
	l.items = append(l.items, nil)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = m
}

// removeAt removes the element at position i; i must refer to an element
// currently in the list.
func (l *orderedList) removeAt(i int) {
	copy(l.items[i:], l.items[i+1:])
	l.items[len(l.items)-1] = nil
	l.items = l.items[:len(l.items)-1]
}

// head returns the earliest-due pending message, or nil when empty.
func (l *orderedList) head() *message.Message {
	if len(l.items) == 0 {
		return nil
	}
	return l.items[0]
}

// at returns the element at position i.
func (l *orderedList) at(i int) *message.Message {
	return l.items[i]
}

func (l *orderedList) len() int {
	return len(l.items)
}
