package render

import (
	"sync"

	"github.com/annel0/sector-stream/internal/world"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer принимает модели видимых секторов для отрисовки.
// Порядок вызовов отрисовки, шейдеры и текстуры — забота реализации.
type Renderer interface {
	Submit(transform mgl32.Mat4, geometry world.Geometry)
}

// CountingRenderer ничего не рисует, а только считает отправленное.
// Используется в headless-режиме и тестах.
type CountingRenderer struct {
	mu       sync.Mutex
	frames   uint64
	models   uint64
	vertices uint64
	last     int
}

// NewCountingRenderer создаёт счётчик отрисовки
func NewCountingRenderer() *CountingRenderer {
	return &CountingRenderer{}
}

// BeginFrame отмечает начало нового кадра
func (r *CountingRenderer) BeginFrame() {
	r.mu.Lock()
	r.frames++
	r.last = 0
	r.mu.Unlock()
}

// Submit учитывает одну модель
func (r *CountingRenderer) Submit(_ mgl32.Mat4, geometry world.Geometry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.models++
	r.last++
	if geometry != nil {
		r.vertices += uint64(geometry.VertexCount())
	}
}

// RendererStats накопленная статистика отрисовки
type RendererStats struct {
	Frames    uint64
	Models    uint64
	Vertices  uint64
	LastFrame int // Моделей в последнем кадре
}

// Stats возвращает снимок статистики
func (r *CountingRenderer) Stats() RendererStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	return RendererStats{
		Frames:    r.frames,
		Models:    r.models,
		Vertices:  r.vertices,
		LastFrame: r.last,
	}
}
