package streaming

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue[int]()
	for i := 0; i < 100; i++ {
		require.NoError(t, q.Send(i))
	}
	assert.Equal(t, 100, q.Len())

	for i := 0; i < 100; i++ {
		v, ok := q.TryRecv()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok := q.TryRecv()
	assert.False(t, ok, "Пустая очередь не блокирует")

	// После опустошения очередь продолжает работать
	require.NoError(t, q.Send(7))
	v, ok := q.TryRecv()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestQueueClose(t *testing.T) {
	q := NewQueue[string]()
	require.NoError(t, q.Send("a"))

	q.Close()
	q.Close()
	assert.True(t, q.Closed())

	err := q.Send("b")
	assert.True(t, errors.Is(err, ErrQueueClosed))

	v, ok := q.TryRecv()
	assert.True(t, ok, "Элементы до закрытия остаются доступны")
	assert.Equal(t, "a", v)

	select {
	case <-q.Done():
	default:
		t.Fatal("Done должен быть закрыт")
	}
}

func TestQueueReclaimsConsumedPrefix(t *testing.T) {
	q := NewQueue[int]()
	require.NoError(t, q.Send(0))

	// Один элемент всегда ждёт в очереди, буфер не должен расти
	for i := 1; i <= 100_000; i++ {
		require.NoError(t, q.Send(i))
		v, ok := q.TryRecv()
		require.True(t, ok)
		require.Equal(t, i-1, v)
	}

	assert.Equal(t, 1, q.Len())
	assert.LessOrEqual(t, cap(q.items), 16)
	assert.Equal(t, 0, q.head)

	v, ok := q.TryRecv()
	assert.True(t, ok)
	assert.Equal(t, 100_000, v)
}

func TestQueueCompactionKeepsOrder(t *testing.T) {
	q := NewQueue[int]()
	next, want := 0, 0

	// Отправляем пачками больше, чем читаем, чтобы сдвиг хвоста происходил посреди буфера
	for round := 0; round < 200; round++ {
		for i := 0; i < 5; i++ {
			require.NoError(t, q.Send(next))
			next++
		}
		for i := 0; i < 4; i++ {
			v, ok := q.TryRecv()
			require.True(t, ok)
			require.Equal(t, want, v)
			want++
		}
	}
	assert.Equal(t, next-want, q.Len())

	for {
		v, ok := q.TryRecv()
		if !ok {
			break
		}
		require.Equal(t, want, v)
		want++
	}
	assert.Equal(t, next, want)
}
