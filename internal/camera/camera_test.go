package camera

import (
	"math"
	"testing"

	"github.com/annel0/sector-stream/internal/render"
	"github.com/annel0/sector-stream/internal/vec"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestMoveDir(t *testing.T) {
	c := New()

	c.MoveDir(Forward, 2)
	assert.InDelta(t, 0, c.Translation().X(), 1e-5)
	assert.InDelta(t, -2, c.Translation().Z(), 1e-5)

	c.MoveDir(Backward, 2)
	assert.InDelta(t, 0, c.Translation().Z(), 1e-5)

	c.MoveDir(Right, 3)
	assert.InDelta(t, 3, c.Translation().X(), 1e-5)
	assert.InDelta(t, 0, c.Translation().Z(), 1e-5)

	c.MoveDir(Left, 3)
	assert.InDelta(t, 0, c.Translation().X(), 1e-5)

	// Поворот на 90° влево: вперед — это -X
	c.SetRotation(0, math.Pi/2)
	c.MoveDir(Forward, 1)
	assert.InDelta(t, -1, c.Translation().X(), 1e-5)
	assert.InDelta(t, 0, c.Translation().Y(), 1e-5)
}

func TestViewMatrixMovesWorldOpposite(t *testing.T) {
	c := New()
	c.SetTranslation(mgl32.Vec3{10, 5, -3})

	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{10, 5, -3, 1})
	assert.InDelta(t, 0, p.X(), 1e-5)
	assert.InDelta(t, 0, p.Y(), 1e-5)
	assert.InDelta(t, 0, p.Z(), 1e-5)
}

func TestFrustumCulling(t *testing.T) {
	c := New()
	planes := c.Frustum().Planes()

	for _, p := range planes {
		n := mgl32.Vec3{p.A, p.B, p.C}.Len()
		assert.InDelta(t, 1, n, 1e-4, "Плоскости должны быть нормализованы")
	}

	// Камера смотрит в -Z
	assert.True(t, render.SectorVisible(planes, vec.Vec3{X: 0, Y: 0, Z: -3}), "Сектор впереди")
	assert.False(t, render.SectorVisible(planes, vec.Vec3{X: 0, Y: 0, Z: 3}), "Сектор позади")

	// Разворот на 180°
	c.SetRotation(0, math.Pi)
	planes = c.Planes()
	assert.True(t, render.SectorVisible(planes, vec.Vec3{X: 0, Y: 0, Z: 3}))
	assert.False(t, render.SectorVisible(planes, vec.Vec3{X: 0, Y: 0, Z: -4}))
}
