package model

import "sync"

// SubmissionQueue carries web submissions from the HTTP goroutines to the
// drain loop. Pushes never block; Pop takes the oldest entry.
type SubmissionQueue struct {
	mu    sync.Mutex
	items []*WebSubmission
}

func NewSubmissionQueue() *SubmissionQueue {
	return &SubmissionQueue{}
}

func (q *SubmissionQueue) Push(s *WebSubmission) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, s)
}

// Pop removes and returns the oldest submission, or nil when empty.
func (q *SubmissionQueue) Pop() *WebSubmission {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	s := q.items[0]
	q.items = q.items[1:]
	return s
}

func (q *SubmissionQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
