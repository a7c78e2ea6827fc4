package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// keyQueue carries key presses from the UI goroutine to the session in the
// order they were typed. Push never blocks, so the UI keeps accepting frames
// while the session is busy drawing.
type keyQueue struct {
	mu      sync.Mutex
	pending []tea.KeyMsg
	closed  bool
	notify  chan struct{}
	out     chan tea.KeyMsg
}

func newKeyQueue() *keyQueue {
	return &keyQueue{
		notify: make(chan struct{}, 1),
		out:    make(chan tea.KeyMsg),
	}
}

// Push appends a key; keys pushed after Close are dropped
func (q *keyQueue) Push(msg tea.KeyMsg) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.pending = append(q.pending, msg)
	q.mu.Unlock()
	q.wake()
}

// Close lets run finish once the pending keys are delivered
func (q *keyQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wake()
}

// Keys is the channel the session reads from. It is closed when run returns.
func (q *keyQueue) Keys() <-chan tea.KeyMsg {
	return q.out
}

func (q *keyQueue) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// run delivers pending keys until the queue is closed and drained, or done
// is closed
func (q *keyQueue) run(done <-chan struct{}) {
	defer close(q.out)
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			closed := q.closed
			q.mu.Unlock()
			if closed {
				return
			}
			select {
			case <-q.notify:
				continue
			case <-done:
				return
			}
		}
		msg := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		select {
		case q.out <- msg:
		case <-done:
			return
		}
	}
}
