package streaming

import (
	"errors"
	"sync"
)

// ErrQueueClosed возвращается при отправке в закрытую очередь
var ErrQueueClosed = errors.New("streaming: queue closed")

// Queue неограниченная FIFO-очередь одного отправителя и одного получателя.
// Отправка никогда не блокируется. После Close отправка возвращает
// ErrQueueClosed, а уже поставленные элементы остаются доступны получателю.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	head   int
	closed bool
	done   chan struct{}
}

// NewQueue создаёт пустую открытую очередь
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{done: make(chan struct{})}
}

// Send ставит элемент в конец очереди
func (q *Queue[T]) Send(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	q.items = append(q.items, v)
	return nil
}

// TryRecv забирает первый элемент, не блокируясь
func (q *Queue[T]) TryRecv() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.head >= len(q.items) {
		return zero, false
	}
	v := q.items[q.head]
	q.items[q.head] = zero
	q.head++

	switch {
	case q.head == len(q.items):
		// Опустевший буфер переиспользуем с начала
		q.items = q.items[:0]
		q.head = 0
	case q.head*2 >= len(q.items):
		// Прочитанный префикс занял половину буфера: сдвигаем хвост в начало
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return v, true
}

// Len возвращает число ожидающих элементов
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Close закрывает очередь. Повторный вызов безопасен.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.done)
}

// Closed сообщает, закрыта ли очередь
func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Done закрывается вместе с очередью
func (q *Queue[T]) Done() <-chan struct{} {
	return q.done
}
