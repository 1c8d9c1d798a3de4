package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	_, ok := q.Poll()
	require.False(t, ok)
	q.Put(1)
	q.Put("two")
	require.Equal(t, 2, q.Len())
	item, ok := q.Poll()
	require.True(t, ok)
	require.Equal(t, 1, item)
	item, ok = q.Poll()
	require.True(t, ok)
	require.Equal(t, "two", item)
	_, ok = q.Poll()
	require.False(t, ok)
	require.Zero(t, q.Len())
}
