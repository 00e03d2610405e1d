package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionQueue_FIFO(t *testing.T) {
	q := NewSubmissionQueue()
	assert.Nil(t, q.Pop())

	q.Push(&WebSubmission{UserID: "a"})
	q.Push(&WebSubmission{UserID: "b"})
	q.Push(&WebSubmission{UserID: "c"})
	assert.Equal(t, 3, q.Len())

	assert.Equal(t, "a", q.Pop().UserID)
	assert.Equal(t, "b", q.Pop().UserID)
	assert.Equal(t, "c", q.Pop().UserID)
	assert.Nil(t, q.Pop())
	assert.Equal(t, 0, q.Len())
}
