package streaming

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// SharedObserver хранит последнюю позицию наблюдателя.
// Пишет потребитель, читает воркер.
type SharedObserver struct {
	mu  sync.Mutex
	pos mgl32.Vec3
}

// NewSharedObserver создаёт наблюдателя в точке pos
func NewSharedObserver(pos mgl32.Vec3) *SharedObserver {
	return &SharedObserver{pos: pos}
}

// Store публикует новую позицию
func (o *SharedObserver) Store(pos mgl32.Vec3) {
	o.mu.Lock()
	o.pos = pos
	o.mu.Unlock()
}

// Load возвращает последнюю опубликованную позицию
func (o *SharedObserver) Load() mgl32.Vec3 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pos
}
