package render

import (
	"testing"

	"github.com/annel0/sector-stream/internal/vec"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// openPlanes возвращает плоскости, которые ничего не отсекают
func openPlanes() [6]Plane {
	var p [6]Plane
	for i := range p {
		p[i] = Plane{D: 1e6}
	}
	return p
}

func TestSectorCenter(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{16, 16, 16}, SectorCenter(vec.Vec3{}))
	assert.Equal(t, mgl32.Vec3{-16, 48, 80}, SectorCenter(vec.Vec3{X: -1, Y: 1, Z: 2}))
}

func TestSectorVisible(t *testing.T) {
	planes := openPlanes()
	assert.True(t, SectorVisible(planes, vec.Vec3{X: 5, Y: -3, Z: 9}))

	// Плоскость x >= 0: нормаль +X
	planes[0] = Plane{A: 1}

	// Центр (16,..) — перед плоскостью
	assert.True(t, SectorVisible(planes, vec.Vec3{}))
	// Центр x = -16: расстояние -16 > -32, сфера пересекает плоскость
	assert.True(t, SectorVisible(planes, vec.Vec3{X: -1}))
	// Центр x = -48: расстояние -48 <= -32, целиком снаружи
	assert.False(t, SectorVisible(planes, vec.Vec3{X: -2}))

	// Ровно на границе радиуса сектор невидим
	planes[0] = Plane{A: 1, D: -16}
	assert.False(t, SectorVisible(planes, vec.Vec3{X: -1}))
}

func TestCountingRenderer(t *testing.T) {
	r := NewCountingRenderer()
	r.BeginFrame()
	r.Submit(mgl32.Ident4(), nil)
	r.Submit(mgl32.Ident4(), nil)

	stats := r.Stats()
	assert.Equal(t, uint64(1), stats.Frames)
	assert.Equal(t, uint64(2), stats.Models)
	assert.Equal(t, 2, stats.LastFrame)

	r.BeginFrame()
	assert.Equal(t, 0, r.Stats().LastFrame)
	assert.Equal(t, Planes(openPlanes()).Planes(), openPlanes())
}
