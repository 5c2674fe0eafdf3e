package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/connectfour-go/internal/dependencies/random"
)

// MockRandom hands out queued IDs, then sequential ones once the queue is empty
type MockRandom struct {
	mu    sync.Mutex
	queue []string
	next  int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom with an empty queue
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// QueueID adds ids to be returned in order
func (r *MockRandom) QueueID(ids ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, ids...)
}

// ID returns the next queued id or a generated "game-N"
func (r *MockRandom) ID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) > 0 {
		id := r.queue[0]
		r.queue = r.queue[1:]
		return id
	}
	r.next++
	return fmt.Sprintf("game-%d", r.next)
}
